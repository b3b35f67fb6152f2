package acctnum

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Min and Max bound generated account numbers (10 digits).
	Min int64 = 1_000_000_000
	Max int64 = 9_999_999_999

	groupSize = 4
)

// Format renders a number in groups of 4 digits separated by hyphens.
// 1234567890 -> "1234-5678-90"
func Format(n int64) string {
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%groupSize == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Parse accepts either the bare digits or the hyphenated form produced by Format.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty account number")
	}
	bare := strings.ReplaceAll(s, "-", "")
	for _, r := range bare {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid account number %q", s)
		}
	}
	n, err := strconv.ParseInt(bare, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account number %q: %w", s, err)
	}
	return n, nil
}

// Valid reports whether n is in the generated 10-digit range.
func Valid(n int64) bool {
	return n >= Min && n <= Max
}
