package simulator

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/je17/promptflow/internal/llm"
)

func sampleLines() []JSONLine {
	return []JSONLine{
		{
			Messages: []Turn{
				{Role: llm.RoleUser, Content: "What is the capital of France?"},
				{Role: llm.RoleAssistant, Content: "Paris."},
			},
			TokenCount: 12,
			Metadata:   map[string]any{"mode": "scripted"},
		},
		{
			Messages: []Turn{
				{Role: llm.RoleUser, Content: "And of Spain?"},
				{Role: llm.RoleAssistant, Content: "Madrid."},
			},
			TokenCount: 9,
		},
	}
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, sampleLines()))

	scanner := bufio.NewScanner(&buf)
	var decoded []JSONLine
	for scanner.Scan() {
		var line JSONLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		decoded = append(decoded, line)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, decoded, 2)
	assert.Equal(t, "Paris.", decoded[0].Messages[1].Content)
	assert.Equal(t, 12, decoded[0].TokenCount)
	assert.Equal(t, "scripted", decoded[0].Metadata["mode"])
	assert.Len(t, decoded[1].Messages, 2)
}

func TestExportJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "simulation.jsonl")

	require.NoError(t, ExportJSONL(path, sampleLines()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))

	// Atomic write leaves no temp files behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "simulation.jsonl", entries[0].Name())
}
