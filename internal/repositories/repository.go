package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

// ErrNotFound is returned when a requested draw does not exist.
var ErrNotFound = errors.New("draw not found")

// DrawRepository defines the persistence contract for the normalized draw
// history. Implementations must keep contest numbers unique; a refresh
// replays the full upstream history, so writes are upserts.
type DrawRepository interface {
	UpsertMany(ctx context.Context, draws []models.DrawRecord) error
	FindAll(ctx context.Context) ([]models.DrawRecord, error)
	FindByContest(ctx context.Context, contestNumber int) (*models.DrawRecord, error)
	FindByDateRange(ctx context.Context, startDate, endDate time.Time) ([]models.DrawRecord, error)
	LatestContest(ctx context.Context) (int, error)
	Count(ctx context.Context) (int64, error)
}
