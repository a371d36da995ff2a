package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumEmptyLedger(t *testing.T) {
	_, ok := Sum(nil)
	require.False(t, ok)
	_, ok = Sum([]Record{})
	require.False(t, ok)
}

func TestSumTotalsIdentity(t *testing.T) {
	records := []Record{
		{Cost: 100, Expenses: 20, FinalPrice: 150, Profit: 30},
		{Cost: 10, Expenses: 2.5, FinalPrice: 20, Profit: 7.5},
		{Cost: -5, Expenses: 0, FinalPrice: 1, Profit: 6},
	}
	t1, ok := Sum(records)
	require.True(t, ok)
	require.Equal(t, 3, t1.Count)
	require.InDelta(t, t1.FinalPrice-t1.Cost-t1.Expenses, t1.Profit, 1e-9)
}

func TestProfitabilityZeroGuard(t *testing.T) {
	require.Equal(t, 0.0, Profitability(30, 0))
	require.InDelta(t, 20.0, Profitability(30, 150), 1e-9)
	require.Equal(t, 0.0, ProfitabilityOf(Totals{Profit: 5, FinalPrice: 0}))
}

func TestByDateGroupsAndSorts(t *testing.T) {
	records := []Record{
		{ID: 1, Date: "2026-08-27", Profit: 1, FinalPrice: 10},
		{ID: 2, Date: "2026-08-28", Profit: 2, FinalPrice: 10},
		{ID: 3, Date: "2026-08-28", Profit: 3, FinalPrice: 10},
	}

	buckets := ByDate(records, "")
	require.Len(t, buckets, 2)
	require.Equal(t, "2026-08-28", buckets[0].Date, "most recent bucket comes first")
	require.Equal(t, 2, buckets[0].Totals.Count)
	require.InDelta(t, 5, buckets[0].Totals.Profit, 1e-9)
	require.Equal(t, "2026-08-27", buckets[1].Date)
}

func TestByDateTargetDrilldown(t *testing.T) {
	records := []Record{
		{ID: 1, Date: "2026-08-27"},
		{ID: 2, Date: "2026-08-28"},
	}

	buckets := ByDate(records, "2026-08-27")
	require.Len(t, buckets, 1)
	require.Equal(t, "2026-08-27", buckets[0].Date)
	require.Len(t, buckets[0].Records, 1)
	require.Equal(t, 1, buckets[0].Records[0].ID)

	require.Nil(t, ByDate(records, "2026-01-01"))
}

func TestByDateCapsSummaryBuckets(t *testing.T) {
	var records []Record
	for day := 1; day <= 14; day++ {
		records = append(records, Record{Date: fmt.Sprintf("2026-08-%02d", day)})
	}

	buckets := ByDate(records, "")
	require.Len(t, buckets, MaxDateBuckets)
	require.Equal(t, "2026-08-14", buckets[0].Date)
	require.Equal(t, "2026-08-05", buckets[len(buckets)-1].Date)

	// A target date outside the cap window is still reachable directly.
	require.Len(t, ByDate(records, "2026-08-01"), 1)
}
