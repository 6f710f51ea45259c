package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

// identityRand leaves the pool order untouched, so sampling always takes
// the leading numbers of each pool. Makes the drawn set fully predictable.
type identityRand struct{}

func (identityRand) Intn(n int) int { return 0 }

func (identityRand) Shuffle(n int, swap func(i, j int)) {}

// slopedTable gives number n the count 60-n: number 1 is the hottest,
// number 60 the coldest, no ties anywhere.
func slopedTable() models.FrequencyTable {
	counts := make(map[int]int, models.MaxNumber)
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		counts[n] = models.MaxNumber - n
	}
	return models.FrequencyTable{Counts: counts, TotalDraws: 300}
}

func emptyIndex() *CombinationIndex {
	return BuildCombinationIndex(nil)
}

func numberSet(numbers []int) map[int]bool {
	set := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		set[n] = true
	}
	return set
}

func TestSuggest_Hot(t *testing.T) {
	engine := NewSuggestionEngine(rand.New(rand.NewSource(42)))

	suggestions, err := engine.Suggest(models.StrategyHot, slopedTable(), emptyIndex(), 10, SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, suggestions, 10)

	for _, s := range suggestions {
		require.Len(t, s.Numbers, models.NumbersPerDraw)
		assert.True(t, len(numberSet(s.Numbers)) == models.NumbersPerDraw, "numbers must be distinct: %v", s.Numbers)
		assert.Equal(t, models.StrategyHot, s.Strategy)
		for _, n := range s.Numbers {
			assert.LessOrEqual(t, n, 10, "hot numbers come from the top-10 pool: %v", s.Numbers)
		}
	}
}

func TestSuggest_Cold(t *testing.T) {
	engine := NewSuggestionEngine(rand.New(rand.NewSource(42)))

	suggestions, err := engine.Suggest(models.StrategyCold, slopedTable(), emptyIndex(), 10, SuggestOptions{})
	require.NoError(t, err)

	for _, s := range suggestions {
		for _, n := range s.Numbers {
			assert.GreaterOrEqual(t, n, 51, "cold numbers come from the bottom-10 pool: %v", s.Numbers)
		}
	}
}

func TestSuggest_Mixed(t *testing.T) {
	engine := NewSuggestionEngine(rand.New(rand.NewSource(42)))

	suggestions, err := engine.Suggest(models.StrategyMixed, slopedTable(), emptyIndex(), 10, SuggestOptions{})
	require.NoError(t, err)

	for _, s := range suggestions {
		require.Len(t, s.Numbers, models.NumbersPerDraw)
		assert.True(t, len(numberSet(s.Numbers)) == models.NumbersPerDraw, "numbers must be distinct: %v", s.Numbers)
		hot, cold := 0, 0
		for _, n := range s.Numbers {
			switch {
			case n <= 10:
				hot++
			case n >= 51:
				cold++
			}
		}
		assert.Equal(t, 3, hot, "mixed takes 3 hot numbers: %v", s.Numbers)
		assert.Equal(t, 3, cold, "mixed takes 3 cold numbers: %v", s.Numbers)
	}
}

func TestSuggest_NumbersNormalized(t *testing.T) {
	engine := NewSuggestionEngine(rand.New(rand.NewSource(7)))

	suggestions, err := engine.Suggest(models.StrategyMixed, slopedTable(), emptyIndex(), 5, SuggestOptions{})
	require.NoError(t, err)

	for _, s := range suggestions {
		assert.Equal(t, models.NormalizeCombination(s.Numbers), s.Numbers, "suggestion numbers must be ascending")
	}
}

func TestSuggest_HistoricalAnnotation(t *testing.T) {
	// With an identity random source the hot strategy always yields the six
	// hottest numbers, which contest 7 happens to have drawn.
	idx := BuildCombinationIndex([]models.DrawRecord{
		testDraw(7, 1, 2, 3, 4, 5, 6),
	})
	engine := NewSuggestionEngine(identityRand{})

	suggestions, err := engine.Suggest(models.StrategyHot, slopedTable(), idx, 1, SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, suggestions[0].Numbers)
	assert.Equal(t, []int{7}, suggestions[0].HistoricalContests)
	assert.True(t, suggestions[0].PreviouslyDrawn())
}

func TestSuggest_NeverDrawnAnnotation(t *testing.T) {
	idx := BuildCombinationIndex([]models.DrawRecord{
		testDraw(1, 40, 41, 42, 43, 44, 45),
	})
	engine := NewSuggestionEngine(identityRand{})

	suggestions, err := engine.Suggest(models.StrategyHot, slopedTable(), idx, 1, SuggestOptions{})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Empty(t, suggestions[0].HistoricalContests)
	assert.False(t, suggestions[0].PreviouslyDrawn())
}

func TestSuggest_UniqueInBatch(t *testing.T) {
	engine := NewSuggestionEngine(rand.New(rand.NewSource(42)))

	suggestions, err := engine.Suggest(models.StrategyHot, slopedTable(), emptyIndex(), 30, SuggestOptions{UniqueInBatch: true})
	require.NoError(t, err)
	require.Len(t, suggestions, 30)

	seen := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		key := models.CombinationKey(s.Numbers)
		assert.False(t, seen[key], "duplicate suggestion %s", key)
		seen[key] = true
	}
}

func TestSuggest_UniqueInBatchExhaustion(t *testing.T) {
	// An identity source regenerates the same combination forever, so a
	// unique batch larger than one cannot complete.
	engine := NewSuggestionEngine(identityRand{})

	_, err := engine.Suggest(models.StrategyHot, slopedTable(), emptyIndex(), 2, SuggestOptions{UniqueInBatch: true})
	assert.Error(t, err)
}

func TestSuggest_InvalidCount(t *testing.T) {
	engine := NewSuggestionEngine(rand.New(rand.NewSource(1)))

	for _, count := range []int{0, -3} {
		_, err := engine.Suggest(models.StrategyHot, slopedTable(), emptyIndex(), count, SuggestOptions{})
		assert.Error(t, err, "count=%d", count)
	}
}

func TestSuggest_UnknownStrategy(t *testing.T) {
	engine := NewSuggestionEngine(rand.New(rand.NewSource(1)))

	_, err := engine.Suggest(models.Strategy("lucky"), slopedTable(), emptyIndex(), 1, SuggestOptions{})
	assert.Error(t, err)
}
