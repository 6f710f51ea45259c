package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/loteriainsights/megasena-backend/internal/models"
	"github.com/loteriainsights/megasena-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DrawRepository implements repositories.DrawRepository on MongoDB.
type DrawRepository struct {
	collection *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository over the "draws"
// collection.
func NewDrawRepository(db *mongo.Database) repositories.DrawRepository {
	return &DrawRepository{
		collection: db.Collection("draws"),
	}
}

// UpsertMany writes the given draws keyed by contest number, replacing any
// existing document for the same contest.
func (r *DrawRepository) UpsertMany(ctx context.Context, draws []models.DrawRecord) error {
	if len(draws) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(draws))
	for _, draw := range draws {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"contestNumber": draw.ContestNumber}).
			SetReplacement(draw).
			SetUpsert(true))
	}
	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}

// FindAll returns the full history ordered by ascending contest number.
func (r *DrawRepository) FindAll(ctx context.Context) ([]models.DrawRecord, error) {
	opts := options.Find().SetSort(bson.M{"contestNumber": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var draws []models.DrawRecord
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, err
	}
	if draws == nil {
		draws = []models.DrawRecord{}
	}
	return draws, nil
}

// FindByContest finds a single draw by contest number.
func (r *DrawRepository) FindByContest(ctx context.Context, contestNumber int) (*models.DrawRecord, error) {
	var draw models.DrawRecord
	err := r.collection.FindOne(ctx, bson.M{"contestNumber": contestNumber}).Decode(&draw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// FindByDateRange returns draws within [startDate, endDate) ordered by
// ascending contest number. Zero bounds are open.
func (r *DrawRepository) FindByDateRange(ctx context.Context, startDate, endDate time.Time) ([]models.DrawRecord, error) {
	filter := bson.M{}
	dateFilter := bson.M{}
	if !startDate.IsZero() {
		dateFilter["$gte"] = startDate
	}
	if !endDate.IsZero() {
		dateFilter["$lt"] = endDate
	}
	if len(dateFilter) > 0 {
		filter["drawDate"] = dateFilter
	}

	opts := options.Find().SetSort(bson.M{"contestNumber": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var draws []models.DrawRecord
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, err
	}
	if draws == nil {
		draws = []models.DrawRecord{}
	}
	return draws, nil
}

// LatestContest returns the highest stored contest number, or 0 when the
// collection is empty.
func (r *DrawRepository) LatestContest(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.M{"contestNumber": -1})
	var draw models.DrawRecord
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&draw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return draw.ContestNumber, nil
}

// Count returns the number of stored draws.
func (r *DrawRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
