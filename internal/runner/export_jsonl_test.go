package runner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/evaluator"
	"github.com/je17/promptflow/internal/types"
)

func sampleRunResult() *RunResult {
	return &RunResult{
		Summary: Summary{
			RunID:       types.NewRunID(),
			Rows:        2,
			MetricMeans: map[string]float64{"f1_score": 0.75},
			StartedAt:   time.Now(),
		},
		Rows: []RowResult{
			{Index: 0, Input: evaluator.Input{Answer: "a"}, Scores: map[string]float64{"f1_score": 1}},
			{Index: 1, Input: evaluator.Input{Answer: "b"}, Scores: map[string]float64{"f1_score": 0.5}},
		},
	}
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, sampleRunResult()))

	var entries []JSONLEntry
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry JSONLEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 3)
	assert.Equal(t, EntryTypeRow, entries[0].Type)
	assert.Equal(t, EntryTypeRow, entries[1].Type)
	assert.Equal(t, EntryTypeSummary, entries[2].Type)
	assert.False(t, entries[2].Timestamp.IsZero())
}

func TestExportJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "results.jsonl")

	require.NoError(t, ExportJSONL(path, sampleRunResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDecodeDataset(t *testing.T) {
	data := `{"question": "q1", "answer": "a1", "ground_truth": "g1"}

{"answer": "a2", "context": "c2"}
`
	inputs, err := DecodeDataset(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "q1", inputs[0].Question)
	assert.Equal(t, "c2", inputs[1].Context)
}

func TestDecodeDatasetBadLine(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader("{\"answer\": \"ok\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadDatasetMissingFile(t *testing.T) {
	_, err := ReadDataset(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
	assert.Equal(t, types.RUN_DATASET_FAILED, types.CodeOf(err))
}
