package models

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// SnapshotVersion is the only snapshot version this build reads.
const SnapshotVersion = 1

var (
	ErrInvalidJSON     = errors.New("file is not valid JSON")
	ErrInvalidSnapshot = errors.New("file structure is incorrect or missing required fields")
)

// Snapshot is the versioned persisted and exported form of the collection.
type Snapshot struct {
	Version int        `json:"version"`
	Runs    []RunEntry `json:"runs"`
}

// NewSnapshot wraps a deep copy of runs in a current-version snapshot.
func NewSnapshot(runs []RunEntry) Snapshot {
	return Snapshot{Version: SnapshotVersion, Runs: CloneRuns(runs)}
}

// EmptySnapshot is what a missing or unreadable store loads as.
func EmptySnapshot() Snapshot {
	return Snapshot{Version: SnapshotVersion, Runs: []RunEntry{}}
}

type rawSnapshot struct {
	Version float64         `json:"version"`
	Runs    json.RawMessage `json:"runs"`
}

// ParseSnapshot decodes data and accepts it only when version is 1 and runs
// is a JSON array.
func ParseSnapshot(data []byte) (Snapshot, error) {
	if !json.Valid(data) {
		return Snapshot{}, ErrInvalidJSON
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	if raw.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported version %v", ErrInvalidSnapshot, raw.Version)
	}
	runs := bytes.TrimSpace(raw.Runs)
	if len(runs) == 0 || runs[0] != '[' {
		return Snapshot{}, fmt.Errorf("%w: runs is not an array", ErrInvalidSnapshot)
	}

	out := Snapshot{Version: SnapshotVersion, Runs: []RunEntry{}}
	if err := json.Unmarshal(runs, &out.Runs); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	return out, nil
}

type ImportMode string

const (
	ImportMerge   ImportMode = "merge"
	ImportReplace ImportMode = "replace"
)

func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ImportMerge:
		return ImportMerge, nil
	case ImportReplace:
		return ImportReplace, nil
	}
	return "", fmt.Errorf("unknown import mode %q, expected merge or replace", s)
}
