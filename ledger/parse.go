package ledger

import (
	"strconv"
	"strings"
)

// ParseAmount parses a single numeric token entered by the user: an optional
// leading sign, digits, and at most one decimal separator. Both '.' and ','
// are accepted as the separator. Multi-token input and scientific notation
// are rejected.
func ParseAmount(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return 0, ErrBadNumber
	}

	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return 0, ErrBadNumber
	}

	seenSep := false
	digits := 0
	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
			if seenSep {
				return 0, ErrBadNumber
			}
			seenSep = true
		default:
			return 0, ErrBadNumber
		}
	}
	if digits == 0 {
		return 0, ErrBadNumber
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, ErrBadNumber
	}
	return v, nil
}

// ParseID parses a positive record id from user text.
func ParseID(input string) (int, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "#")
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, ErrBadID
	}
	return id, nil
}
