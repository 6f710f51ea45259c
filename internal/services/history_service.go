package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/loteriainsights/megasena-backend/internal/analysis"
	"github.com/loteriainsights/megasena-backend/internal/cache"
	"github.com/loteriainsights/megasena-backend/internal/models"
	"github.com/loteriainsights/megasena-backend/internal/repositories"
	"github.com/loteriainsights/megasena-backend/pkg/caixaapi"
)

// Compile-time check to ensure HistoryServiceImpl implements HistoryService
var _ HistoryService = (*HistoryServiceImpl)(nil)

// wireDateLayout is the dd/MM/yyyy format the Caixa API serves.
const wireDateLayout = "02/01/2006"

// invalidStates are the placeholder region codes the upstream data uses
// for wins with no usable location. Winner entries carrying them are
// dropped during normalization.
var invalidStates = map[string]bool{
	"":    true,
	"--":  true,
	"XX":  true,
	"N/A": true,
}

// HistoryServiceImpl ingests the draw history: it fetches the raw upstream
// data, normalizes it into validated DrawRecords, persists them and hands
// fresh snapshots to the analysis service.
type HistoryServiceImpl struct {
	drawRepo repositories.DrawRepository
	api      *caixaapi.Client
	cache    *cache.Store
	analysis AnalysisService
}

// NewHistoryService creates a new HistoryServiceImpl.
func NewHistoryService(drawRepo repositories.DrawRepository, api *caixaapi.Client, cacheStore *cache.Store, analysisService AnalysisService) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		drawRepo: drawRepo,
		api:      api,
		cache:    cacheStore,
		analysis: analysisService,
	}
}

// Bootstrap installs an initial snapshot. Preference order: the MongoDB
// history, then the cached CSV tables, then a full upstream refresh.
func (s *HistoryServiceImpl) Bootstrap(ctx context.Context) error {
	draws, err := s.drawRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored draw history: %w", err)
	}
	if len(draws) > 0 {
		s.analysis.SetHistory(draws)
		slog.Info("Bootstrapped analysis from stored history", "draws", len(draws))
		return nil
	}

	if s.cache.Exists() {
		table, err := s.cache.LoadFrequencyTable()
		if err == nil {
			winners, werr := s.cache.LoadWinnerRecords()
			if werr == nil {
				s.analysis.SetCachedTables(table, winners)
				slog.Info("Bootstrapped analysis from cached tables", "draws", table.TotalDraws)
				return nil
			}
			err = werr
		}
		slog.Warn("Cached tables unreadable, falling back to refresh", "error", err)
	}

	if _, err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("initial history refresh failed: %w", err)
	}
	return nil
}

// Refresh replays the full upstream history: fetch, normalize, upsert into
// MongoDB, rewrite the CSV caches and swap in a fresh analysis snapshot.
// Either the whole pipeline succeeds or the previous snapshot stays in
// place untouched.
func (s *HistoryServiceImpl) Refresh(ctx context.Context) (models.HistorySummary, error) {
	raw, err := s.api.FetchHistory(ctx)
	if err != nil {
		return models.HistorySummary{}, fmt.Errorf("failed to fetch upstream history: %w", err)
	}

	draws := make([]models.DrawRecord, 0, len(raw))
	skipped := 0
	for _, resp := range raw {
		draw, err := normalizeDraw(resp)
		if err != nil {
			slog.Warn("Skipping malformed upstream draw", "contest", resp.Contest, "error", err)
			skipped++
			continue
		}
		draws = append(draws, draw)
	}
	if len(draws) == 0 {
		return models.HistorySummary{}, fmt.Errorf("upstream history contained no usable draws (%d skipped)", skipped)
	}

	if err := s.drawRepo.UpsertMany(ctx, draws); err != nil {
		return models.HistorySummary{}, fmt.Errorf("failed to persist draw history: %w", err)
	}

	if err := s.cache.SaveWinnerRecords(draws); err != nil {
		return models.HistorySummary{}, err
	}
	if err := s.cache.SaveFrequencyTable(analysis.BuildFrequencyTable(draws)); err != nil {
		return models.HistorySummary{}, err
	}

	s.analysis.SetHistory(draws)

	summary := analysis.Summarize(draws)
	slog.Info("Draw history refreshed",
		"draws", summary.TotalDraws,
		"skipped", skipped,
		"firstDraw", summary.FirstDrawDate.Format("2006-01-02"),
		"lastDraw", summary.LastDrawDate.Format("2006-01-02"))
	return summary, nil
}

// GetDrawByContest retrieves one stored draw.
func (s *HistoryServiceImpl) GetDrawByContest(ctx context.Context, contestNumber int) (*models.DrawRecord, error) {
	return s.drawRepo.FindByContest(ctx, contestNumber)
}

// GetDraws retrieves stored draws within a date range; zero bounds are
// open.
func (s *HistoryServiceImpl) GetDraws(ctx context.Context, startDate, endDate time.Time) ([]models.DrawRecord, error) {
	return s.drawRepo.FindByDateRange(ctx, startDate, endDate)
}

// normalizeDraw converts one wire-format draw into a validated DrawRecord:
// numbers parsed to ints, the date parsed, locations upper-cased and
// trimmed, winner entries expanded one per ticket, and entries with
// placeholder region codes dropped.
func normalizeDraw(resp caixaapi.DrawResponse) (models.DrawRecord, error) {
	date, err := time.Parse(wireDateLayout, resp.Date)
	if err != nil {
		return models.DrawRecord{}, fmt.Errorf("invalid draw date %q: %w", resp.Date, err)
	}

	numbers := make([]int, 0, len(resp.Numbers))
	for _, raw := range resp.Numbers {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return models.DrawRecord{}, fmt.Errorf("invalid drawn number %q: %w", raw, err)
		}
		numbers = append(numbers, n)
	}

	var winners []models.WinnerEntry
	for _, loc := range resp.WinnerLocations {
		municipality := strings.ToUpper(strings.TrimSpace(loc.Municipality))
		state := strings.ToUpper(strings.TrimSpace(loc.State))
		if municipality == "" || municipality == "N/A" || invalidStates[state] {
			continue
		}
		// The upstream payload omits quantidade for single-ticket wins.
		tickets := loc.Tickets
		if tickets <= 0 {
			tickets = 1
		}
		for i := 0; i < tickets; i++ {
			winners = append(winners, models.WinnerEntry{
				Municipality: municipality,
				State:        state,
			})
		}
	}

	draw := models.DrawRecord{
		ContestNumber: resp.Contest,
		DrawDate:      date,
		Numbers:       numbers,
		Winners:       winners,
	}
	if err := draw.Validate(); err != nil {
		return models.DrawRecord{}, err
	}
	return draw, nil
}
