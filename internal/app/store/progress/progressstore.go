package progressstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("progress")}
}

// ErrNotFound is returned when a progress entry id does not resolve.
var ErrNotFound = errors.New("progress entry not found")

// Create inserts a monthly progress entry. Target defaults to 5 when
// unset.
func (s *Store) Create(ctx context.Context, p models.Progress) (models.Progress, error) {
	p.ID = primitive.NewObjectID()
	if p.Target == 0 {
		p.Target = 5
	}
	p.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Progress{}, err
	}
	return p, nil
}

// List returns progress entries oldest first, optionally filtered by
// year. Month names don't sort usefully, so entry order within a year
// follows recording order.
func (s *Store) List(ctx context.Context, year int) ([]models.Progress, error) {
	filter := bson.M{}
	if year > 0 {
		filter["year"] = year
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.Progress
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes a progress entry by ID. Returns the number of
// documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
