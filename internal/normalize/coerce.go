package normalize

import (
	"strconv"
	"strings"
)

// parseAmount coerces a cell into a non-negative float. Thousands
// separators and currency symbols are stripped; anything unparseable
// coerces to 0 rather than failing the row.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseCount coerces a cell into a non-negative integer count. Fractional
// inputs truncate; unparseable values coerce to 0.
func parseCount(s string) int64 {
	return int64(parseAmount(s))
}
