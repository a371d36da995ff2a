package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]float64{
		"12":     12,
		"1.5":    1.5,
		"1,5":    1.5,
		"-3":     -3,
		"+2.25":  2.25,
		" 100 ":  100,
		"0":      0,
		"007":    7,
		"-0,5":   -0.5,
		"123456": 123456,
	}
	for in, want := range valid {
		v, err := ParseAmount(in)
		require.NoError(t, err, "input %q", in)
		require.InDelta(t, want, v, 1e-9, "input %q", in)
	}

	invalid := []string{
		"", " ", "abc", "1 2", "1.2.3", "12,3,4", "1e5", "-", "+", ".", ",",
		"1000 200 1500", "12руб", "--5", "1.5e2",
	}
	for _, in := range invalid {
		_, err := ParseAmount(in)
		require.ErrorIs(t, err, ErrBadNumber, "input %q", in)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("2")
	require.NoError(t, err)
	require.Equal(t, 2, id)

	id, err = ParseID(" #3 ")
	require.NoError(t, err)
	require.Equal(t, 3, id)

	for _, in := range []string{"0", "-1", "x", "", "1.5", "#"} {
		_, err := ParseID(in)
		require.ErrorIs(t, err, ErrBadID, "input %q", in)
	}
}

func TestParseQuickCalc(t *testing.T) {
	q, ok := ParseQuickCalc("1000 200 1500")
	require.True(t, ok)
	require.InDelta(t, 300, q.Profit, 1e-9)
	require.InDelta(t, 20.0, q.Profitability, 1e-9)

	q, ok = ParseQuickCalc("  10\t2,5  20 ")
	require.True(t, ok)
	require.InDelta(t, 7.5, q.Profit, 1e-9)

	// Zero final price must not divide by zero.
	q, ok = ParseQuickCalc("10 5 0")
	require.True(t, ok)
	require.Equal(t, 0.0, q.Profitability)

	for _, in := range []string{"1000 200", "1 2 3 4", "a b c", ""} {
		_, ok := ParseQuickCalc(in)
		require.False(t, ok, "input %q", in)
	}
}
