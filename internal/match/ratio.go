package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the difflib sequence matcher similarity of a and b:
// 2*M / T where M is the number of matched characters and T the total
// number of characters in both strings. Two empty strings score 1.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}

	m := difflib.NewMatcher(splitChars(a), splitChars(b))

	return m.Ratio()
}

func splitChars(s string) []string {
	if s == "" {
		return []string{}
	}

	return strings.Split(s, "")
}
