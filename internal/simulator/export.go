package simulator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/je17/promptflow/internal/types"
)

// ExportJSONL writes one JSON line per conversation to the file at path.
// Uses atomic write pattern (write to temp file, then rename).
func ExportJSONL(path string, lines []JSONLine) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return types.WrapError(types.RUN_EXPORT_FAILED,
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	tempFile, err := os.CreateTemp(dir, ".sim-*.jsonl.tmp")
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

	if err := WriteJSONL(tempFile, lines); err != nil {
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

// WriteJSONL writes the conversation lines to the provided writer in JSONL
// format. This is the core export logic, separated for easier testing.
func WriteJSONL(w io.Writer, lines []JSONLine) error {
	enc := json.NewEncoder(w)
	for i, line := range lines {
		if err := enc.Encode(line); err != nil {
			return types.WrapError(types.RUN_EXPORT_FAILED,
				fmt.Sprintf("failed to encode conversation %d", i), err)
		}
	}
	return nil
}
