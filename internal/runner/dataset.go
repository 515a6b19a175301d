package runner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/je17/promptflow/internal/evaluator"
	"github.com/je17/promptflow/internal/types"
)

// maxLineSize bounds a single dataset line; contexts can be large documents.
const maxLineSize = 10 * 1024 * 1024

// ReadDataset loads a JSONL dataset file, one evaluator.Input per line.
// Blank lines are skipped.
func ReadDataset(path string) ([]evaluator.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.RUN_DATASET_FAILED,
			fmt.Sprintf("failed to open dataset %s", path), err)
	}
	defer f.Close()

	inputs, err := DecodeDataset(f)
	if err != nil {
		return nil, types.WrapError(types.RUN_DATASET_FAILED,
			fmt.Sprintf("failed to read dataset %s", path), err)
	}
	return inputs, nil
}

// DecodeDataset reads JSONL inputs from r.
func DecodeDataset(r io.Reader) ([]evaluator.Input, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var inputs []evaluator.Input
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}

		var input evaluator.Input
		if err := json.Unmarshal(b, &input); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		inputs = append(inputs, input)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inputs, nil
}
