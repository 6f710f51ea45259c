package models

import (
	"fmt"
	"sort"
	"strings"
)

// NormalizeCombination returns a sorted copy of the given numbers. The
// input is never modified. Combinations are order-independent, so the
// sorted form is the canonical one used everywhere downstream.
func NormalizeCombination(numbers []int) []int {
	normalized := make([]int, len(numbers))
	copy(normalized, numbers)
	sort.Ints(normalized)
	return normalized
}

// CombinationKey formats a combination as its canonical zero-padded string
// form, e.g. "04-08-15-16-23-42". The same set of numbers always produces
// the same key regardless of input order.
func CombinationKey(numbers []int) string {
	normalized := NormalizeCombination(numbers)
	parts := make([]string, len(normalized))
	for i, n := range normalized {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, "-")
}

// RepeatedCombination is a six-number set that was drawn in more than one
// contest, together with every contest that drew it, ascending.
type RepeatedCombination struct {
	Numbers  []int `json:"numbers"`
	Contests []int `json:"contests"`
}
