package services

import (
	"sync"

	"golang.org/x/exp/slog"

	"github.com/loteriainsights/megasena-backend/internal/analysis"
	"github.com/loteriainsights/megasena-backend/internal/cache"
	"github.com/loteriainsights/megasena-backend/internal/models"
)

// Compile-time check to ensure AnalysisServiceImpl implements AnalysisService
var _ AnalysisService = (*AnalysisServiceImpl)(nil)

// snapshot bundles the derived tables of one immutable view of the draw
// history. index and geography are nil only when the snapshot was seeded
// from the cached CSV tables (frequency-only mode keeps index nil).
type snapshot struct {
	table     models.FrequencyTable
	index     *analysis.CombinationIndex
	geography *analysis.GeographyAggregate
	summary   models.HistorySummary
}

// AnalysisServiceImpl serves all analytical queries from the most recently
// installed snapshot. Derived tables are never edited in place: any history
// change rebuilds the whole snapshot, which is then swapped under the lock.
type AnalysisServiceImpl struct {
	mu     sync.RWMutex
	snap   *snapshot
	engine *analysis.SuggestionEngine
}

// NewAnalysisService creates an AnalysisServiceImpl whose suggestion engine
// samples from the given random source.
func NewAnalysisService(rng analysis.Rand) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{
		engine: analysis.NewSuggestionEngine(rng),
	}
}

// SetHistory rebuilds every derived table from the full draw history and
// installs the result as the current snapshot.
func (s *AnalysisServiceImpl) SetHistory(draws []models.DrawRecord) {
	snap := &snapshot{
		table:     analysis.BuildFrequencyTable(draws),
		index:     analysis.BuildCombinationIndex(draws),
		geography: analysis.BuildGeographyAggregate(draws),
		summary:   analysis.Summarize(draws),
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	slog.Info("Analysis snapshot rebuilt from draw history",
		"draws", snap.summary.TotalDraws,
		"repeats", snap.index.TotalRepeats())
}

// SetCachedTables installs a snapshot seeded from the persisted tables.
// Frequency and geography queries produce the same results as a fresh
// rebuild; operations that need the full draw list stay unavailable until
// a history-backed snapshot replaces this one.
func (s *AnalysisServiceImpl) SetCachedTables(table models.FrequencyTable, winners []cache.WinnerRecord) {
	draws := make([]models.DrawRecord, 0, len(winners))
	for _, w := range winners {
		draws = append(draws, models.DrawRecord{
			ContestNumber: w.ContestNumber,
			DrawDate:      w.DrawDate,
			Winners: []models.WinnerEntry{
				{Municipality: w.Municipality, State: w.State},
			},
		})
	}
	snap := &snapshot{
		table:     table,
		geography: analysis.BuildGeographyAggregate(draws),
		summary:   models.HistorySummary{TotalDraws: table.TotalDraws},
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	slog.Info("Analysis snapshot rebuilt from cached tables",
		"draws", table.TotalDraws,
		"winnerRecords", len(winners))
}

func (s *AnalysisServiceImpl) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrHistoryNotLoaded
	}
	return s.snap, nil
}

// Summary returns the headline figures of the current snapshot.
func (s *AnalysisServiceImpl) Summary() (models.HistorySummary, error) {
	snap, err := s.current()
	if err != nil {
		return models.HistorySummary{}, err
	}
	return snap.summary, nil
}

// Frequencies returns the full per-number frequency table.
func (s *AnalysisServiceImpl) Frequencies() (models.FrequencyTable, error) {
	snap, err := s.current()
	if err != nil {
		return models.FrequencyTable{}, err
	}
	return snap.table, nil
}

// RankNumbers returns the top-k numbers by frequency in the requested
// direction.
func (s *AnalysisServiceImpl) RankNumbers(k int, direction models.RankDirection) ([]models.NumberCount, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return analysis.Rank(snap.table, k, direction)
}

// Repeats returns every historically repeated combination and the total
// repeat count.
func (s *AnalysisServiceImpl) Repeats() ([]models.RepeatedCombination, int, error) {
	snap, err := s.current()
	if err != nil {
		return nil, 0, err
	}
	if snap.index == nil {
		return nil, 0, ErrDrawHistoryUnavailable
	}
	return snap.index.FindRepeats(), snap.index.TotalRepeats(), nil
}

// CheckCombination reports the contests that previously drew the candidate
// combination, empty when it has never been drawn.
func (s *AnalysisServiceImpl) CheckCombination(numbers []int) ([]int, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	if snap.index == nil {
		return nil, ErrDrawHistoryUnavailable
	}
	return snap.index.Lookup(numbers)
}

// Suggest generates suggestions for the requested strategy, each annotated
// with its historical-match status.
func (s *AnalysisServiceImpl) Suggest(strategy models.Strategy, count int, uniqueInBatch bool) ([]models.Suggestion, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	if snap.index == nil {
		return nil, ErrDrawHistoryUnavailable
	}
	return s.engine.Suggest(strategy, snap.table, snap.index, count, analysis.SuggestOptions{
		UniqueInBatch: uniqueInBatch,
	})
}

// TopMunicipalities returns the k most awarded municipalities across all
// states.
func (s *AnalysisServiceImpl) TopMunicipalities(k int) ([]models.MunicipalityCount, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.geography.TopMunicipalities(k)
}

// StateRanking returns every state with recorded wins, most awarded first.
func (s *AnalysisServiceImpl) StateRanking() ([]models.StateCount, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.geography.States(), nil
}

// RankMunicipalitiesByState returns the k most awarded municipalities of
// one state.
func (s *AnalysisServiceImpl) RankMunicipalitiesByState(state string, k int) ([]models.MunicipalityCount, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return snap.geography.RankMunicipalities(state, k)
}
