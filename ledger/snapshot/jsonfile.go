// Package snapshot provides whole-collection persistence backends for the
// ledger: a JSON file rewritten atomically on every mutation, a SQL table
// rewritten in a single transaction, and an in-memory variant for tests.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m3rciful/ledgerbot/ledger"
)

// JSONFile persists the ledger as one indented JSON document. Writes go to a
// temp file in the same directory followed by a rename, so a reader of the
// path never observes a partial snapshot.
type JSONFile struct {
	path string
}

// NewJSONFile creates the parent directory if needed and returns the backend.
func NewJSONFile(path string) (*JSONFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	return &JSONFile{path: path}, nil
}

// Load reads the last persisted collection. A missing file means no prior
// state exists yet.
func (j *JSONFile) Load(_ context.Context) ([]ledger.Record, bool, error) {
	data, err := os.ReadFile(j.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	var records []ledger.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, true, nil
}

// Save rewrites the whole snapshot durably.
func (j *JSONFile) Save(_ context.Context, records []ledger.Record) error {
	if records == nil {
		records = []ledger.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(j.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err := os.Rename(tmpName, j.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (j *JSONFile) Close() error { return nil }
