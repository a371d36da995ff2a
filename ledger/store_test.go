package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSnap is a minimal in-memory Snapshotter. It lives here instead of using
// the snapshot package to avoid an import cycle in white-box tests.
type fakeSnap struct {
	records  []Record
	saved    bool
	failSave error
	saves    int
}

func (f *fakeSnap) Load(context.Context) ([]Record, bool, error) {
	out := make([]Record, len(f.records))
	copy(out, f.records)
	return out, f.saved, nil
}

func (f *fakeSnap) Save(_ context.Context, records []Record) error {
	if f.failSave != nil {
		return f.failSave
	}
	f.records = make([]Record, len(records))
	copy(f.records, records)
	f.saved = true
	f.saves++
	return nil
}

func (f *fakeSnap) Close() error { return nil }

func openTestStore(t *testing.T) (*Store, *fakeSnap) {
	t.Helper()
	snap := &fakeSnap{}
	s, err := Open(context.Background(), snap)
	require.NoError(t, err)
	s.now = func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
	return s, snap
}

func TestOpenInitializesEmptyState(t *testing.T) {
	snap := &fakeSnap{}
	s, err := Open(context.Background(), snap)
	require.NoError(t, err)
	require.Equal(t, 0, s.Count())
	require.True(t, snap.saved, "fresh store must persist the empty ledger")
}

func TestCreateComputesProfit(t *testing.T) {
	s, _ := openTestStore(t)

	rec, err := s.Create(context.Background(), "Widget", 100, 20, 150)
	require.NoError(t, err)

	require.Equal(t, 1, rec.ID)
	require.InDelta(t, 30, rec.Profit, 1e-9)
	require.InDelta(t, 20.0, Profitability(rec.Profit, rec.FinalPrice), 1e-9)
	require.Equal(t, "2026-08-29", rec.Date)
	require.Nil(t, rec.UpdatedAt)
}

func TestCreateThenGetReturnsEqualRecord(t *testing.T) {
	s, _ := openTestStore(t)

	created, err := s.Create(context.Background(), "Widget", 100, 20, 150)
	require.NoError(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestGetUnknownID(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.Get(7)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFieldRecomputesProfit(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "A", 10, 1, 20)
	require.NoError(t, err)
	rec, err := s.Create(ctx, "B", 100, 20, 150)
	require.NoError(t, err)

	updated, err := s.UpdateField(ctx, rec.ID, FieldCost, Number(250))
	require.NoError(t, err)
	require.Equal(t, 250.0, updated.Cost)
	require.InDelta(t, 150-250-20, updated.Profit, 1e-9)
	require.NotNil(t, updated.UpdatedAt)

	// The other record is untouched.
	other, err := s.Get(1)
	require.NoError(t, err)
	require.Equal(t, 10.0, other.Cost)
	require.Nil(t, other.UpdatedAt)
}

func TestUpdateFieldName(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "Old", 1, 2, 3)
	require.NoError(t, err)

	updated, err := s.UpdateField(ctx, rec.ID, FieldName, Text("New"))
	require.NoError(t, err)
	require.Equal(t, "New", updated.Name)
	require.Equal(t, rec.Profit, updated.Profit)
}

func TestUpdateFieldTypeMismatch(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "A", 1, 2, 3)
	require.NoError(t, err)

	_, err = s.UpdateField(ctx, 1, FieldCost, Text("nope"))
	require.ErrorIs(t, err, ErrFieldMismatch)

	_, err = s.UpdateField(ctx, 1, FieldName, Number(5))
	require.ErrorIs(t, err, ErrFieldMismatch)

	_, err = s.UpdateField(ctx, 1, Field("bogus"), Number(5))
	require.ErrorIs(t, err, ErrFieldMismatch)
}

func TestDeleteRenumbersIDs(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, name, 1, 1, 3)
		require.NoError(t, err)
	}

	removed, err := s.Delete(ctx, 2)
	require.NoError(t, err)
	require.True(t, removed)

	all := s.All()
	require.Len(t, all, 2)
	require.Equal(t, 1, all[0].ID)
	require.Equal(t, "a", all[0].Name)
	require.Equal(t, 2, all[1].ID)
	require.Equal(t, "c", all[1].Name)
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	s, snap := openTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "a", 1, 1, 3)
	require.NoError(t, err)
	savesBefore := snap.saves

	removed, err := s.Delete(ctx, 9)
	require.NoError(t, err)
	require.False(t, removed)
	require.Equal(t, savesBefore, snap.saves, "no-op delete must not rewrite the snapshot")
}

func TestDeleteOnlyRecordLeavesEmptyLedger(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "only", 1, 1, 3)
	require.NoError(t, err)

	removed, err := s.Delete(ctx, 1)
	require.NoError(t, err)
	require.True(t, removed)
	require.Equal(t, 0, s.Count())

	_, ok := Sum(s.All())
	require.False(t, ok, "statistics over an empty ledger must give the empty signal")
}

func TestSaveFailureKeepsPriorState(t *testing.T) {
	s, snap := openTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "keep", 1, 1, 3)
	require.NoError(t, err)

	snap.failSave = errors.New("disk full")

	_, err = s.Create(ctx, "lost", 2, 2, 6)
	var se *StorageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 1, s.Count())

	_, err = s.UpdateField(ctx, 1, FieldCost, Number(99))
	require.ErrorAs(t, err, &se)
	got, getErr := s.Get(1)
	require.NoError(t, getErr)
	require.Equal(t, 1.0, got.Cost)

	_, err = s.Delete(ctx, 1)
	require.ErrorAs(t, err, &se)
	require.Equal(t, 1, s.Count())

	// Persisted state still matches memory.
	require.Len(t, snap.records, 1)
	require.Equal(t, "keep", snap.records[0].Name)
}

func TestReloadRoundTrip(t *testing.T) {
	snap := &fakeSnap{}
	ctx := context.Background()

	first, err := Open(ctx, snap)
	require.NoError(t, err)
	_, err = first.Create(ctx, "a", 100, 20, 150)
	require.NoError(t, err)
	_, err = first.Create(ctx, "b", 1, 2, 3)
	require.NoError(t, err)
	_, err = first.UpdateField(ctx, 2, FieldName, Text("b2"))
	require.NoError(t, err)

	second, err := Open(ctx, snap)
	require.NoError(t, err)
	require.Equal(t, first.All(), second.All())
}

func TestListPagination(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := s.Create(ctx, "r", 1, 1, 3)
		require.NoError(t, err)
	}

	page, total := s.List(1, 5)
	require.Equal(t, 7, total)
	require.Len(t, page, 5)
	require.Equal(t, 1, page[0].ID)

	page, _ = s.List(2, 5)
	require.Len(t, page, 2)
	require.Equal(t, 6, page[0].ID)

	page, total = s.List(3, 5)
	require.Empty(t, page)
	require.Equal(t, 7, total)

	page, _ = s.List(0, 5)
	require.Empty(t, page)
}
