package winnerstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("monthly_winners")}
}

var (
	// ErrNotFound is returned when no snapshot matches.
	ErrNotFound = errors.New("monthly winner not found")
	// ErrDuplicatePeriod is returned when a snapshot already exists for
	// the month/year pair.
	ErrDuplicatePeriod = errors.New("a winner snapshot for this month already exists")
)

// Create records a monthly winner snapshot. One snapshot per
// month/year; the unique index enforces it.
func (s *Store) Create(ctx context.Context, w models.MonthlyWinner) (models.MonthlyWinner, error) {
	w.ID = primitive.NewObjectID()
	w.CreatedAt = time.Now()
	if w.TopThree == nil {
		w.TopThree = []models.WinnerEntry{}
	}

	if _, err := s.c.InsertOne(ctx, w); err != nil {
		if wafflemongo.IsDup(err) {
			return models.MonthlyWinner{}, ErrDuplicatePeriod
		}
		return models.MonthlyWinner{}, err
	}
	return w, nil
}

// List returns snapshots newest first, optionally filtered by year.
// Month is a name, not a number, so freeze order breaks ties within a year.
func (s *Store) List(ctx context.Context, year int) ([]models.MonthlyWinner, error) {
	filter := bson.M{}
	if year > 0 {
		filter["year"] = year
	}

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var winners []models.MonthlyWinner
	if err := cur.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// Latest returns the most recent snapshot, or ErrNotFound when no
// snapshot has been recorded yet.
func (s *Store) Latest(ctx context.Context) (*models.MonthlyWinner, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var w models.MonthlyWinner
	if err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&w); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}
