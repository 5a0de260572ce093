package reportstore

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
	return &Store{c: db.Collection("reports")}
}

// ErrNotFound is returned when a report id does not resolve.
var ErrNotFound = errors.New("report not found")

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Status     string
	Type       string
	ReporterID primitive.ObjectID
}

// Create inserts a new open report with the default priority.
func (s *Store) Create(ctx context.Context, r models.Report) (models.Report, error) {
	r.ID = primitive.NewObjectID()
	r.Status = models.ReportOpen
	r.Priority = models.PriorityMedium
	r.AdminResponse = ""
	r.CreatedAt = time.Now()
	r.ResolvedAt = nil

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Report{}, err
	}
	return r, nil
}

// GetByID loads a report by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var r models.Report
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// List returns reports newest first. Members see only their own
// reports (the handler sets ReporterID); admins list everything.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Report, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if !f.ReporterID.IsZero() {
		filter["reporter_id"] = f.ReporterID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reports []models.Report
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Update holds the admin-editable report fields. Nil means "leave as
// is".
type Update struct {
	Status        *string
	Priority      *string
	AdminResponse *string
}

// Apply writes a partial admin update. Moving into resolved or closed
// stamps ResolvedAt; moving back out clears it.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Report, error) {
	set := bson.M{}
	unset := bson.M{}

	if upd.Status != nil {
		set["status"] = *upd.Status
		switch *upd.Status {
		case models.ReportResolved, models.ReportClosed:
			set["resolved_at"] = time.Now()
		default:
			unset["resolved_at"] = ""
		}
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.AdminResponse != nil {
		set["admin_response"] = *upd.AdminResponse
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return s.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r models.Report
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&r)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Delete removes a report by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
