package ledger

import "sort"

// MaxDateBuckets caps the summary view to the most recent calendar days.
const MaxDateBuckets = 10

// Totals are simple sums over a set of records.
type Totals struct {
	Count      int
	Cost       float64
	Expenses   float64
	FinalPrice float64
	Profit     float64
}

// Sum folds records into totals. ok is false for an empty input: callers must
// branch on it rather than render a zero-totals card.
func Sum(records []Record) (t Totals, ok bool) {
	if len(records) == 0 {
		return Totals{}, false
	}
	for _, r := range records {
		t.Count++
		t.Cost += r.Cost
		t.Expenses += r.Expenses
		t.FinalPrice += r.FinalPrice
		t.Profit += r.Profit
	}
	return t, true
}

// ProfitabilityOf returns total profit as a percentage of total revenue,
// with the zero-revenue guard.
func ProfitabilityOf(t Totals) float64 {
	return Profitability(t.Profit, t.FinalPrice)
}

// DateBucket groups the records of one calendar day with their totals.
type DateBucket struct {
	Date    string
	Totals  Totals
	Records []Record
}

// ByDate groups records by their creation date. With a non-empty target only
// that bucket is returned (nil when the date has no records). Without one,
// buckets come back most recent first, capped to MaxDateBuckets.
func ByDate(records []Record, target string) []DateBucket {
	groups := make(map[string][]Record)
	for _, r := range records {
		if target != "" && r.Date != target {
			continue
		}
		groups[r.Date] = append(groups[r.Date], r)
	}
	if len(groups) == 0 {
		return nil
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if target == "" && len(dates) > MaxDateBuckets {
		dates = dates[:MaxDateBuckets]
	}

	buckets := make([]DateBucket, 0, len(dates))
	for _, d := range dates {
		t, _ := Sum(groups[d])
		buckets = append(buckets, DateBucket{Date: d, Totals: t, Records: groups[d]})
	}
	return buckets
}
