package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/m3rciful/ledgerbot/core/logger"
	"log/slog"
)

// Snapshotter persists the whole record collection. Load is called once at
// startup; Save rewrites the full snapshot and must be atomic from the point
// of view of a concurrent reader of the persisted state.
type Snapshotter interface {
	// Load returns the last persisted collection. found is false when no
	// prior persisted state exists at all.
	Load(ctx context.Context) (records []Record, found bool, err error)
	Save(ctx context.Context, records []Record) error
	Close() error
}

// Store is the durable ledger. The in-memory slice is authoritative; every
// mutation rewrites the snapshot before it becomes visible, so memory and
// disk never diverge. Ids are dense: id == position+1 at all times.
type Store struct {
	mu      sync.RWMutex
	records []Record
	snap    Snapshotter
	now     func() time.Time
}

// Open loads the last persisted ledger, or initializes and persists an empty
// one when no prior state exists.
func Open(ctx context.Context, snap Snapshotter) (*Store, error) {
	records, found, err := snap.Load(ctx)
	if err != nil {
		return nil, storageErr("load", err)
	}
	s := &Store{records: records, snap: snap, now: time.Now}
	if !found {
		if err := snap.Save(ctx, nil); err != nil {
			return nil, storageErr("init", err)
		}
	}
	logger.Info(ctx, "service.ledger", "ledger.loaded",
		slog.String("status", "ok"),
		slog.Int("records", len(records)),
	)
	return s, nil
}

// Close releases the underlying snapshot backend.
func (s *Store) Close() error { return s.snap.Close() }

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns a copy of the full ordered collection.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id or ErrNotFound.
func (s *Store) Get(id int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

// List returns the page-th slice of pageSize records (1-based) and the total
// count. A page beyond range yields an empty slice, not an error.
func (s *Store) List(page, pageSize int) ([]Record, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := len(s.records)
	if page < 1 || pageSize < 1 {
		return nil, total
	}
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	out := make([]Record, end-start)
	copy(out, s.records[start:end])
	return out, total
}

// Create appends a new record with a freshly assigned dense id, computes the
// profit, persists the collection, and returns the stored record.
func (s *Store) Create(ctx context.Context, name string, cost, expenses, finalPrice float64) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := Record{
		ID:         len(s.records) + 1,
		Name:       name,
		Cost:       cost,
		Expenses:   expenses,
		FinalPrice: finalPrice,
		CreatedAt:  now,
		Date:       now.Format(DateLayout),
	}
	rec.recompute()

	next := append(s.copyLocked(), rec)
	if err := s.snap.Save(ctx, next); err != nil {
		logger.Error(ctx, "service.ledger", "ledger.create",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return Record{}, storageErr("create", err)
	}
	s.records = next

	logger.Info(ctx, "service.ledger", "ledger.create",
		slog.String("status", "ok"),
		slog.Int("record_id", rec.ID),
		slog.Int("records", len(next)),
	)
	return rec, nil
}

// UpdateField overwrites one field of the record with the given id. Numeric
// fields trigger a profit recomputation; updated_at is stamped. The caller
// must supply a value of the matching type.
func (s *Store) UpdateField(ctx context.Context, id int, field Field, value Value) (Record, error) {
	if !field.Known() {
		return Record{}, ErrFieldMismatch
	}
	if field.Numeric() != value.numeric {
		return Record{}, ErrFieldMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Record{}, ErrNotFound
	}

	next := s.copyLocked()
	rec := &next[idx]
	switch field {
	case FieldName:
		rec.Name = value.text
	case FieldCost:
		rec.Cost = value.number
	case FieldExpenses:
		rec.Expenses = value.number
	case FieldFinalPrice:
		rec.FinalPrice = value.number
	}
	if field.Numeric() {
		rec.recompute()
	}
	updated := s.now()
	rec.UpdatedAt = &updated

	if err := s.snap.Save(ctx, next); err != nil {
		logger.Error(ctx, "service.ledger", "ledger.update",
			slog.String("status", "fail"),
			slog.Int("record_id", id),
			slog.String("err", err.Error()),
		)
		return Record{}, storageErr("update", err)
	}
	s.records = next

	logger.Info(ctx, "service.ledger", "ledger.update",
		slog.String("status", "ok"),
		slog.Int("record_id", id),
		slog.String("field", string(field)),
	)
	return *rec, nil
}

// Delete removes the record with the given id and renumbers the remaining
// records so ids stay a contiguous 1..N range matching list order. It reports
// whether a record was actually removed.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	for i := range next {
		next[i].ID = i + 1
	}

	if err := s.snap.Save(ctx, next); err != nil {
		logger.Error(ctx, "service.ledger", "ledger.delete",
			slog.String("status", "fail"),
			slog.Int("record_id", id),
			slog.String("err", err.Error()),
		)
		return false, storageErr("delete", err)
	}
	s.records = next

	logger.Info(ctx, "service.ledger", "ledger.delete",
		slog.String("status", "ok"),
		slog.Int("record_id", id),
		slog.Int("records", len(next)),
	)
	return true, nil
}

func (s *Store) copyLocked() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
