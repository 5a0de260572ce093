package submissionstore

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
	return &Store{c: db.Collection("submissions")}
}

var (
	// ErrNotFound is returned when a submission id does not resolve.
	ErrNotFound = errors.New("submission not found")
	// ErrNotPending is returned when a lifecycle operation requires a
	// pending submission but the submission has already been reviewed.
	ErrNotPending = errors.New("submission is not pending")
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	Status   string
	MemberID primitive.ObjectID
}

// Create inserts a new pending submission.
func (s *Store) Create(ctx context.Context, sub models.Submission) (models.Submission, error) {
	sub.ID = primitive.NewObjectID()
	sub.Status = models.SubmissionPending
	sub.SubmittedAt = time.Now()
	sub.ReviewedAt = nil
	sub.ReviewedBy = ""
	sub.AdminComment = ""

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

// GetByID loads a submission by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// List returns submissions newest first, optionally filtered by status
// and/or member.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Submission, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if !f.MemberID.IsZero() {
		filter["member_id"] = f.MemberID
	}

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// MarkReviewed transitions a pending submission to approved or
// rejected. The status guard is part of the filter so a concurrent
// second review loses cleanly.
func (s *Store) MarkReviewed(ctx context.Context, id primitive.ObjectID, status, adminComment, reviewedBy string) (*models.Submission, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sub models.Submission
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.SubmissionPending},
		bson.M{"$set": bson.M{
			"status":        status,
			"admin_comment": adminComment,
			"reviewed_at":   now,
			"reviewed_by":   reviewedBy,
		}},
		opts,
	).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Distinguish "gone" from "already reviewed".
			if _, gerr := s.GetByID(ctx, id); gerr == ErrNotFound {
				return nil, ErrNotFound
			}
			return nil, ErrNotPending
		}
		return nil, err
	}
	return &sub, nil
}

// DeletePending removes a submission only while it is still pending and
// owned by the given member. Admins pass a zero ownerID to skip the
// ownership check.
func (s *Store) DeletePending(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "status": models.SubmissionPending}
	if !ownerID.IsZero() {
		filter["member_id"] = ownerID
	}

	res, err := s.c.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		if _, gerr := s.GetByID(ctx, id); gerr == ErrNotFound {
			return ErrNotFound
		}
		return ErrNotPending
	}
	return nil
}
