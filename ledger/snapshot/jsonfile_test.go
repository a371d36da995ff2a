package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/ledgerbot/ledger"
)

func TestJSONFileMissingMeansNoPriorState(t *testing.T) {
	j, err := NewJSONFile(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)

	records, found, err := j.Load(context.Background())
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, records)
}

func TestJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "ledger.json")
	j, err := NewJSONFile(path)
	require.NoError(t, err)
	ctx := context.Background()

	updated := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	in := []ledger.Record{
		{
			ID: 1, Name: "Widget", Cost: 100, Expenses: 20, FinalPrice: 150,
			Profit:    30,
			CreatedAt: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
			Date:      "2026-08-29",
		},
		{
			ID: 2, Name: "Кабель usb-c", Cost: 1.5, Expenses: 0, FinalPrice: 3,
			Profit:    1.5,
			CreatedAt: time.Date(2026, 8, 29, 9, 5, 0, 0, time.UTC),
			UpdatedAt: &updated,
			Date:      "2026-08-29",
		},
	}
	require.NoError(t, j.Save(ctx, in))

	out, found, err := j.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, in, out)
}

func TestJSONFileSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	j, err := NewJSONFile(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, j.Save(ctx, nil))

	_, found, err := j.Load(ctx)
	require.NoError(t, err)
	require.True(t, found, "an explicitly saved empty ledger is prior state")
}

func TestJSONFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	j, err := NewJSONFile(filepath.Join(dir, "ledger.json"))
	require.NoError(t, err)

	require.NoError(t, j.Save(context.Background(), []ledger.Record{{ID: 1, Name: "x"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "ledger.json", entries[0].Name())
}
