package analysis

import (
	"fmt"
	"sort"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

// BuildFrequencyTable computes per-number occurrence counts across the
// full draw history. The resulting table always covers the complete
// 1..60 domain, with zero counts for numbers never drawn.
func BuildFrequencyTable(draws []models.DrawRecord) models.FrequencyTable {
	counts := make(map[int]int, models.MaxNumber)
	for n := models.MinNumber; n <= models.MaxNumber; n++ {
		counts[n] = 0
	}
	for _, draw := range draws {
		for _, n := range draw.Numbers {
			counts[n]++
		}
	}
	return models.FrequencyTable{
		Counts:     counts,
		TotalDraws: len(draws),
	}
}

// Rank returns the top-k numbers of the table by occurrence count.
// Direction "most" ranks by descending count, "least" by ascending count;
// ties are broken by ascending number in both directions.
func Rank(table models.FrequencyTable, k int, direction models.RankDirection) ([]models.NumberCount, error) {
	if k <= 0 || k > models.MaxNumber {
		return nil, &InvalidRangeError{K: k}
	}

	ranked := make([]models.NumberCount, 0, len(table.Counts))
	for n, c := range table.Counts {
		ranked = append(ranked, models.NumberCount{Number: n, Count: c})
	}

	switch direction {
	case models.RankMost:
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Count != ranked[j].Count {
				return ranked[i].Count > ranked[j].Count
			}
			return ranked[i].Number < ranked[j].Number
		})
	case models.RankLeast:
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Count != ranked[j].Count {
				return ranked[i].Count < ranked[j].Count
			}
			return ranked[i].Number < ranked[j].Number
		})
	default:
		return nil, fmt.Errorf("unknown rank direction %q", direction)
	}

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k], nil
}

// Summarize computes the headline figures of the history: total draws and
// the dates of the first and last draw.
func Summarize(draws []models.DrawRecord) models.HistorySummary {
	summary := models.HistorySummary{TotalDraws: len(draws)}
	for _, draw := range draws {
		if summary.FirstDrawDate.IsZero() || draw.DrawDate.Before(summary.FirstDrawDate) {
			summary.FirstDrawDate = draw.DrawDate
		}
		if draw.DrawDate.After(summary.LastDrawDate) {
			summary.LastDrawDate = draw.DrawDate
		}
	}
	return summary
}
