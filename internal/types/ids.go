package types

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RunID identifies a single evaluation or simulation run.
// It wraps a UUID string for type-safe generation, validation, and serialization.
type RunID string

// NewRunID generates a new UUID v4 and returns it as a RunID.
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// ParseRunID parses and validates a string as a UUID, returning a RunID.
func ParseRunID(s string) (RunID, error) {
	if s == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid UUID format: %w", err)
	}

	return RunID(parsed.String()), nil
}

// String returns the string representation of the RunID.
func (id RunID) String() string {
	return string(id)
}

// IsZero checks if the RunID is empty.
func (id RunID) IsZero() bool {
	return id == ""
}

// MarshalJSON implements the json.Marshaler interface.
func (id RunID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (id *RunID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseRunID(s)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}
