package ledger

import "strings"

// QuickCalc is the stateless three-number computation available outside any
// dialogue. It never touches the stored ledger.
type QuickCalc struct {
	Cost          float64
	Expenses      float64
	FinalPrice    float64
	Profit        float64
	Profitability float64
}

// ParseQuickCalc recognizes "cost expenses final_price" as three numeric
// whitespace-separated tokens and computes the derived figures. ok is false
// for anything else.
func ParseQuickCalc(text string) (QuickCalc, bool) {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		return QuickCalc{}, false
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := ParseAmount(p)
		if err != nil {
			return QuickCalc{}, false
		}
		vals[i] = v
	}
	q := QuickCalc{Cost: vals[0], Expenses: vals[1], FinalPrice: vals[2]}
	q.Profit = ComputeProfit(q.Cost, q.Expenses, q.FinalPrice)
	q.Profitability = Profitability(q.Profit, q.FinalPrice)
	return q, true
}
