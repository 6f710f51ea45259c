package analysis

import (
	"sort"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

// CombinationIndex maps every normalized six-number combination drawn in
// the history to the contests that drew it. A key with more than one
// contest is a historical repeat.
type CombinationIndex struct {
	contestsByKey map[string][]int
	numbersByKey  map[string][]int
}

// BuildCombinationIndex indexes the full draw history by normalized
// combination. Contest lists are stored ascending regardless of the order
// draws arrive in.
func BuildCombinationIndex(draws []models.DrawRecord) *CombinationIndex {
	idx := &CombinationIndex{
		contestsByKey: make(map[string][]int, len(draws)),
		numbersByKey:  make(map[string][]int, len(draws)),
	}
	for _, draw := range draws {
		key := models.CombinationKey(draw.Numbers)
		idx.contestsByKey[key] = append(idx.contestsByKey[key], draw.ContestNumber)
		if _, ok := idx.numbersByKey[key]; !ok {
			idx.numbersByKey[key] = models.NormalizeCombination(draw.Numbers)
		}
	}
	for _, contests := range idx.contestsByKey {
		sort.Ints(contests)
	}
	return idx
}

// FindRepeats returns every combination drawn in more than one contest,
// ordered by the contest of its first occurrence.
func (idx *CombinationIndex) FindRepeats() []models.RepeatedCombination {
	repeats := make([]models.RepeatedCombination, 0)
	for key, contests := range idx.contestsByKey {
		if len(contests) < 2 {
			continue
		}
		repeats = append(repeats, models.RepeatedCombination{
			Numbers:  idx.numbersByKey[key],
			Contests: append([]int(nil), contests...),
		})
	}
	sort.Slice(repeats, func(i, j int) bool {
		return repeats[i].Contests[0] < repeats[j].Contests[0]
	})
	return repeats
}

// TotalRepeats counts repeat occurrences across the history: a combination
// drawn n times contributes n-1.
func (idx *CombinationIndex) TotalRepeats() int {
	total := 0
	for _, contests := range idx.contestsByKey {
		if len(contests) > 1 {
			total += len(contests) - 1
		}
	}
	return total
}

// Lookup normalizes the candidate combination and returns the contests
// that previously drew it. An empty result means the combination has never
// been drawn. The candidate must be exactly six distinct numbers in
// [1, 60].
func (idx *CombinationIndex) Lookup(numbers []int) ([]int, error) {
	if err := ValidateCombination(numbers); err != nil {
		return nil, err
	}
	contests, ok := idx.contestsByKey[models.CombinationKey(numbers)]
	if !ok {
		return nil, nil
	}
	return append([]int(nil), contests...), nil
}

// ValidateCombination checks that a candidate holds exactly six distinct
// numbers in [1, 60].
func ValidateCombination(numbers []int) error {
	if len(numbers) != models.NumbersPerDraw {
		return &InvalidCombinationError{Numbers: numbers, Reason: "must contain exactly 6 numbers"}
	}
	seen := make(map[int]bool, models.NumbersPerDraw)
	for _, n := range numbers {
		if n < models.MinNumber || n > models.MaxNumber {
			return &InvalidCombinationError{Numbers: numbers, Reason: "numbers must be between 1 and 60"}
		}
		if seen[n] {
			return &InvalidCombinationError{Numbers: numbers, Reason: "numbers must be distinct"}
		}
		seen[n] = true
	}
	return nil
}
