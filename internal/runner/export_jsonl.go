package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/je17/promptflow/internal/types"
)

// JSONLEntry represents a single line in the JSONL export.
// Each entry has a type and timestamp for easy parsing and filtering.
type JSONLEntry struct {
	// Type indicates the kind of data in this entry
	Type string `json:"type"`

	// Timestamp is when this entry was created
	Timestamp time.Time `json:"timestamp"`

	// Data contains the actual payload (structure varies by type)
	Data any `json:"data"`
}

// Entry types for JSONL export
const (
	EntryTypeRow     = "row"
	EntryTypeSummary = "summary"
)

// ExportJSONL exports a run result to a JSONL file at the specified path.
// Each line contains a JSON object with type, timestamp, and data fields:
// one row entry per dataset row, then a final summary entry.
// Uses atomic write pattern (write to temp file, then rename).
func ExportJSONL(path string, result *RunResult) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return types.WrapError(types.RUN_EXPORT_FAILED,
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	tempFile, err := os.CreateTemp(dir, ".eval-*.jsonl.tmp")
	if err != nil {
		return types.WrapError(types.RUN_EXPORT_FAILED,
			"failed to create temporary file", err)
	}
	tempPath := tempFile.Name()

	// Ensure cleanup of temp file on error
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if err := WriteJSONL(tempFile, result); err != nil {
		return err
	}

	if err := tempFile.Close(); err != nil {
		return types.WrapError(types.RUN_EXPORT_FAILED,
			"failed to close temporary file", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return types.WrapError(types.RUN_EXPORT_FAILED,
			fmt.Sprintf("failed to rename %s to %s", tempPath, path), err)
	}

	// Prevent deferred cleanup from removing the successfully renamed file
	tempFile = nil

	return nil
}

// WriteJSONL writes a run result to the provided writer in JSONL format.
// This is the core export logic, separated for easier testing.
// Each line is a complete JSON object that can be parsed independently.
func WriteJSONL(w io.Writer, result *RunResult) error {
	encoder := json.NewEncoder(w)

	for i := range result.Rows {
		entry := JSONLEntry{
			Type:      EntryTypeRow,
			Timestamp: time.Now(),
			Data:      result.Rows[i],
		}
		if err := encoder.Encode(entry); err != nil {
			return types.WrapError(types.RUN_EXPORT_FAILED,
				fmt.Sprintf("failed to encode row %d", result.Rows[i].Index), err)
		}
	}

	summaryEntry := JSONLEntry{
		Type:      EntryTypeSummary,
		Timestamp: time.Now(),
		Data:      result.Summary,
	}
	if err := encoder.Encode(summaryEntry); err != nil {
		return types.WrapError(types.RUN_EXPORT_FAILED,
			"failed to encode summary", err)
	}

	return nil
}
