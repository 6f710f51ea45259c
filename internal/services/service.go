package services

import (
	"context"
	"errors"
	"time"

	"github.com/loteriainsights/megasena-backend/internal/cache"
	"github.com/loteriainsights/megasena-backend/internal/models"
)

// ErrHistoryNotLoaded is returned when a query arrives before any history
// snapshot has been installed.
var ErrHistoryNotLoaded = errors.New("draw history not loaded yet")

// ErrDrawHistoryUnavailable is returned for operations that need the full
// draw list when the current snapshot was seeded from the cached tables
// only (frequency and geography work, combination lookups do not).
var ErrDrawHistoryUnavailable = errors.New("full draw history unavailable in current snapshot")

// ErrInvalidCredentials is returned on a failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AnalysisService exposes the analytical engine over the current immutable
// history snapshot. Snapshots are rebuilt wholesale and swapped; queries
// never observe a partially built table.
type AnalysisService interface {
	// SetHistory installs a snapshot built from the full draw history.
	SetHistory(draws []models.DrawRecord)
	// SetCachedTables installs a snapshot rebuilt from the persisted CSV
	// tables; frequency and geography queries behave identically to a
	// fresh build, combination queries report ErrDrawHistoryUnavailable.
	SetCachedTables(table models.FrequencyTable, winners []cache.WinnerRecord)

	Summary() (models.HistorySummary, error)
	Frequencies() (models.FrequencyTable, error)
	RankNumbers(k int, direction models.RankDirection) ([]models.NumberCount, error)

	Repeats() ([]models.RepeatedCombination, int, error)
	CheckCombination(numbers []int) ([]int, error)
	Suggest(strategy models.Strategy, count int, uniqueInBatch bool) ([]models.Suggestion, error)

	TopMunicipalities(k int) ([]models.MunicipalityCount, error)
	StateRanking() ([]models.StateCount, error)
	RankMunicipalitiesByState(state string, k int) ([]models.MunicipalityCount, error)
}

// HistoryService owns ingestion of the draw history: fetching from the
// Caixa API, normalizing, persisting and installing fresh snapshots into
// the analysis service.
type HistoryService interface {
	// Bootstrap loads an initial snapshot: MongoDB first, the CSV caches
	// as fallback, and a full refresh when neither has data.
	Bootstrap(ctx context.Context) error
	// Refresh replays the upstream history end to end.
	Refresh(ctx context.Context) (models.HistorySummary, error)
	GetDrawByContest(ctx context.Context, contestNumber int) (*models.DrawRecord, error)
	GetDraws(ctx context.Context, startDate, endDate time.Time) ([]models.DrawRecord, error)
}

// AuthService authenticates the administrator allowed to trigger history
// refreshes.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}
