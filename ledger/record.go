// Package ledger owns the persisted collection of profit records and the
// statistics derived from it. It knows nothing about dialogues or transport.
package ledger

import "time"

// DateLayout is the calendar-day key used to bucket records for statistics.
const DateLayout = "2006-01-02"

// Record is one tracked item: what it cost, what was spent on it, and what it
// finally sold for. Profit is derived and never stored stale.
type Record struct {
	ID         int        `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Cost       float64    `json:"cost" db:"cost"`
	Expenses   float64    `json:"expenses" db:"expenses"`
	FinalPrice float64    `json:"final_price" db:"final_price"`
	Profit     float64    `json:"profit" db:"profit"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	Date       string     `json:"date" db:"date"`
}

// ComputeProfit returns final price minus cost minus expenses.
func ComputeProfit(cost, expenses, finalPrice float64) float64 {
	return finalPrice - cost - expenses
}

// Profitability returns profit as a percentage of the final price,
// defined as 0 when the final price is zero.
func Profitability(profit, finalPrice float64) float64 {
	if finalPrice == 0 {
		return 0
	}
	return profit / finalPrice * 100
}

func (r *Record) recompute() {
	r.Profit = ComputeProfit(r.Cost, r.Expenses, r.FinalPrice)
}

// Field identifies an editable Record field.
type Field string

const (
	FieldName       Field = "name"
	FieldCost       Field = "cost"
	FieldExpenses   Field = "expenses"
	FieldFinalPrice Field = "final_price"
)

// Numeric reports whether the field holds an amount rather than text.
func (f Field) Numeric() bool {
	switch f {
	case FieldCost, FieldExpenses, FieldFinalPrice:
		return true
	}
	return false
}

// Known reports whether f is one of the editable fields.
func (f Field) Known() bool {
	switch f {
	case FieldName, FieldCost, FieldExpenses, FieldFinalPrice:
		return true
	}
	return false
}

// Value is a tagged update value for a single Record field: either text for
// the name or a number for one of the amounts.
type Value struct {
	text    string
	number  float64
	numeric bool
}

// Text wraps a name value.
func Text(s string) Value { return Value{text: s} }

// Number wraps an amount value.
func Number(f float64) Value { return Value{number: f, numeric: true} }
