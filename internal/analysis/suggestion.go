package analysis

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

// Size of the hot and cold sampling pools, matching the top/bottom-10
// frequency rankings the suggestions are drawn from.
const suggestionPoolSize = 10

// Number of attempts before giving up on a constraint that should be
// satisfiable (mixed-pool overlap, batch uniqueness).
const maxSampleAttempts = 100

// Rand is the random source used for sampling. *rand.Rand satisfies it;
// tests supply a fixed-seed source for deterministic output.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a time-seeded random source for production use.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SuggestOptions tunes batch generation. By default duplicate suggestions
// within a batch are allowed; only duplicate numbers inside a single
// suggestion are forbidden.
type SuggestOptions struct {
	UniqueInBatch bool
}

// SuggestionEngine generates candidate plays from the frequency rankings
// and annotates each one with its historical-match status.
type SuggestionEngine struct {
	rng Rand
}

// NewSuggestionEngine creates a SuggestionEngine backed by the given
// random source.
func NewSuggestionEngine(rng Rand) *SuggestionEngine {
	return &SuggestionEngine{rng: rng}
}

// Suggest produces count suggestions for the requested strategy:
// hot samples 6 distinct numbers from the 10 most frequent, cold from the
// 10 least frequent, and mixed unions 3 from each pool. Every suggestion
// is checked against the combination index so callers can see whether it
// matches a past winning combination.
func (e *SuggestionEngine) Suggest(strategy models.Strategy, table models.FrequencyTable, idx *CombinationIndex, count int, opts SuggestOptions) ([]models.Suggestion, error) {
	if count <= 0 {
		return nil, fmt.Errorf("suggestion count must be positive, got %d", count)
	}

	hotPool, coldPool, err := samplingPools(table)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.Suggestion, 0, count)
	seen := make(map[string]bool, count)
	duplicates := 0
	for len(suggestions) < count {
		var numbers []int
		numbers, err = e.draw(strategy, hotPool, coldPool)
		if err != nil {
			return nil, err
		}

		key := models.CombinationKey(numbers)
		if opts.UniqueInBatch && seen[key] {
			duplicates++
			if len(seen) >= combinationCapacity(strategy) || duplicates >= maxSampleAttempts {
				return nil, fmt.Errorf("strategy %q pool exhausted after %d unique suggestions", strategy, len(suggestions))
			}
			continue
		}
		duplicates = 0
		seen[key] = true

		contests, err := idx.Lookup(numbers)
		if err != nil {
			// Numbers come straight from the 1..60 pools, so a validation
			// failure here means a bug in the sampler.
			return nil, fmt.Errorf("generated combination failed validation: %w", err)
		}
		suggestions = append(suggestions, models.Suggestion{
			Numbers:            models.NormalizeCombination(numbers),
			Strategy:           strategy,
			HistoricalContests: contests,
		})
	}
	return suggestions, nil
}

func (e *SuggestionEngine) draw(strategy models.Strategy, hotPool, coldPool []int) ([]int, error) {
	switch strategy {
	case models.StrategyHot:
		return e.sampleDistinct(hotPool, models.NumbersPerDraw, strategy)
	case models.StrategyCold:
		return e.sampleDistinct(coldPool, models.NumbersPerDraw, strategy)
	case models.StrategyMixed:
		return e.drawMixed(hotPool, coldPool)
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// drawMixed samples 3 numbers from each pool. The pools are disjoint
// whenever at least 20 distinct numbers have been drawn, but a degenerate
// history can make them overlap, so colliding unions are resampled.
func (e *SuggestionEngine) drawMixed(hotPool, coldPool []int) ([]int, error) {
	half := models.NumbersPerDraw / 2
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		hotPart, err := e.sampleDistinct(hotPool, half, models.StrategyMixed)
		if err != nil {
			return nil, err
		}
		coldPart, err := e.sampleDistinct(coldPool, half, models.StrategyMixed)
		if err != nil {
			return nil, err
		}
		numbers := append(hotPart, coldPart...)
		if distinct(numbers) {
			return numbers, nil
		}
	}
	return nil, &InsufficientPoolError{Strategy: models.StrategyMixed, PoolSize: distinctUnionSize(hotPool, coldPool)}
}

func (e *SuggestionEngine) sampleDistinct(pool []int, k int, strategy models.Strategy) ([]int, error) {
	if len(pool) < models.NumbersPerDraw {
		return nil, &InsufficientPoolError{Strategy: strategy, PoolSize: len(pool)}
	}
	shuffled := append([]int(nil), pool...)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:k], nil
}

func samplingPools(table models.FrequencyTable) (hot, cold []int, err error) {
	mostRanked, err := Rank(table, suggestionPoolSize, models.RankMost)
	if err != nil {
		return nil, nil, err
	}
	leastRanked, err := Rank(table, suggestionPoolSize, models.RankLeast)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range mostRanked {
		hot = append(hot, row.Number)
	}
	for _, row := range leastRanked {
		cold = append(cold, row.Number)
	}
	return hot, cold, nil
}

func distinct(numbers []int) bool {
	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}

func distinctUnionSize(a, b []int) int {
	seen := make(map[int]bool, len(a)+len(b))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		seen[n] = true
	}
	return len(seen)
}

// combinationCapacity returns how many distinct suggestions a strategy can
// possibly produce, used to detect an exhausted unique batch. 10 choose 6
// for the single-pool strategies, (10 choose 3)^2 for mixed on disjoint
// pools; the mixed figure is an upper bound when the pools overlap.
func combinationCapacity(strategy models.Strategy) int {
	switch strategy {
	case models.StrategyMixed:
		return 120 * 120
	default:
		return 210
	}
}
