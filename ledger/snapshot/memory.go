package snapshot

import (
	"context"
	"sync"

	"github.com/m3rciful/ledgerbot/ledger"
)

// Memory keeps the snapshot in process memory. Used by tests and as a
// throwaway backend for local experiments.
type Memory struct {
	mu      sync.Mutex
	records []ledger.Record
	saved   bool

	// FailSave, when set, makes the next Save calls return this error.
	FailSave error
}

// NewMemory returns an empty in-memory backend with no prior state.
func NewMemory() *Memory { return &Memory{} }

// Load returns the last saved collection.
func (m *Memory) Load(_ context.Context) ([]ledger.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ledger.Record, len(m.records))
	copy(out, m.records)
	return out, m.saved, nil
}

// Save replaces the stored collection.
func (m *Memory) Save(_ context.Context, records []ledger.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.records = make([]ledger.Record, len(records))
	copy(m.records, records)
	m.saved = true
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
