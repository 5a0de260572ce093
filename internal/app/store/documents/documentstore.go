package documentstore

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
	return &Store{c: db.Collection("documents")}
}

// ErrNotFound is returned when a document id does not resolve.
var ErrNotFound = errors.New("document not found")

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Year     int
	Category string
}

// Create inserts a new document record.
func (s *Store) Create(ctx context.Context, d models.Document) (models.Document, error) {
	d.ID = primitive.NewObjectID()
	if d.UploadDate.IsZero() {
		d.UploadDate = time.Now()
	}
	if d.Year == 0 {
		d.Year = d.UploadDate.Year()
	}

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Document{}, err
	}
	return d, nil
}

// GetByID loads a document by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var d models.Document
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns documents newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Document, error) {
	filter := bson.M{}
	if f.Year > 0 {
		filter["year"] = f.Year
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	opts := options.Find().SetSort(bson.D{{Key: "upload_date", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Years returns the distinct archive years, newest first.
func (s *Store) Years(ctx context.Context) ([]int, error) {
	raw, err := s.c.Distinct(ctx, "year", bson.M{})
	if err != nil {
		return nil, err
	}

	years := make([]int, 0, len(raw))
	for _, v := range raw {
		switch y := v.(type) {
		case int32:
			years = append(years, int(y))
		case int64:
			years = append(years, int(y))
		case int:
			years = append(years, y)
		}
	}
	// Distinct gives ascending order; callers want newest first.
	for i, j := 0, len(years)-1; i < j; i, j = i+1, j-1 {
		years[i], years[j] = years[j], years[i]
	}
	return years, nil
}

// Delete removes a document record by ID and returns the removed
// record so the caller can clean up stored file content.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var d models.Document
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
