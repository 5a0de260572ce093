package eventstore

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
	return &Store{c: db.Collection("events")}
}

// ErrNotFound is returned when an event id does not resolve.
var ErrNotFound = errors.New("event not found")

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Year       int
	Type       string
	Status     string
	Upcoming   bool
	PublicOnly bool
}

// Create inserts a new event. Status defaults from the event date when
// the caller left it blank, and Year is derived from the date.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Year = e.Date.Year()
	if e.Status == "" {
		if e.Date.After(time.Now()) {
			e.Status = models.EventUpcoming
		} else {
			e.Status = models.EventCompleted
		}
	}
	e.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetByID loads an event by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns events sorted by date. Upcoming queries sort soonest
// first; everything else sorts newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Event, error) {
	filter := bson.M{}
	if f.Year > 0 {
		filter["year"] = f.Year
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PublicOnly {
		filter["is_public"] = true
	}

	sortDir := -1
	if f.Upcoming {
		filter["date"] = bson.M{"$gte": time.Now()}
		filter["status"] = bson.M{"$in": bson.A{models.EventUpcoming, models.EventOngoing}}
		sortDir = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: sortDir}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Delete removes an event by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
