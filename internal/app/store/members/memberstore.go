package memberstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
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
	return &Store{c: db.Collection("members")}
}

var (
	// ErrNotFound is returned when a member id does not resolve.
	ErrNotFound = errors.New("member not found")
	// ErrDuplicateEmail is returned when attempting to create a member with an email that already exists.
	ErrDuplicateEmail = errors.New("a member with this email already exists")

	errBadRole = errors.New(`role must be "member"|"admin"`)
)

// GetByID loads a member by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByEmail looks up a member by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a new member after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, m models.Member) (models.Member, error) {
	m.ID = primitive.NewObjectID()
	m.Name = normalize.Name(m.Name)
	m.Email = normalize.Email(m.Email)

	if m.Role == "" {
		m.Role = models.RoleMember
	}
	switch m.Role {
	case models.RoleMember, models.RoleAdmin:
		// ok
	default:
		return models.Member{}, errBadRole
	}

	if m.JoinYear == 0 {
		m.JoinYear = time.Now().Year()
	}
	if m.Achievements == nil {
		m.Achievements = []models.Achievement{}
	}
	m.IsActive = true

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Member{}, ErrDuplicateEmail
		}
		return models.Member{}, err
	}
	return m, nil
}

// List returns members sorted by points descending, optionally filtered
// by join year. Ties keep the store's natural order, which is what the
// leaderboard's rank assignment expects.
func (s *Store) List(ctx context.Context, joinYear int) ([]models.Member, error) {
	filter := bson.M{}
	if joinYear > 0 {
		filter["join_year"] = joinYear
	}

	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Top returns up to limit members sorted by points descending,
// optionally filtered by join year.
func (s *Store) Top(ctx context.Context, limit int, joinYear int) ([]models.Member, error) {
	filter := bson.M{}
	if joinYear > 0 {
		filter["join_year"] = joinYear
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ProfileUpdate holds fields a member may change on their own record.
type ProfileUpdate struct {
	Bio          *string
	ProfileImage *string
}

// CounterUpdate holds the admin-only counter overrides.
type CounterUpdate struct {
	Points         *int
	EventsAttended *int
	Contributions  *int
}

// UpdateProfile applies a partial profile update.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.Member, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.ProfileImage != nil {
		set["profile_image"] = *upd.ProfileImage
	}
	return s.findAndSet(ctx, id, set)
}

// UpdateCounters applies a partial counter override. Negative values
// are rejected by the handler before this is called; the store also
// refuses to persist a negative points value.
func (s *Store) UpdateCounters(ctx context.Context, id primitive.ObjectID, upd CounterUpdate) (*models.Member, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Points != nil {
		if *upd.Points < 0 {
			return nil, errors.New("points must be >= 0")
		}
		set["points"] = *upd.Points
	}
	if upd.EventsAttended != nil {
		set["events_attended"] = *upd.EventsAttended
	}
	if upd.Contributions != nil {
		set["contributions"] = *upd.Contributions
	}
	return s.findAndSet(ctx, id, set)
}

func (s *Store) findAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Member, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.Member
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// SetPassword stores a bcrypt hash for the member.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Credit applies an approval's member-side effects in one atomic
// document update: append the achievement, add the points, bump
// contributions, and bump eventsAttended for event-category awards.
func (s *Store) Credit(ctx context.Context, id primitive.ObjectID, a models.Achievement, points int) error {
	inc := bson.M{
		"points":        points,
		"contributions": 1,
	}
	if a.Category == models.CategoryEvent {
		inc["events_attended"] = 1
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"achievements": a},
		"$inc":  inc,
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendAchievement pushes a manually-awarded achievement without
// touching the counters.
func (s *Store) AppendAchievement(ctx context.Context, id primitive.ObjectID, a models.Achievement) (*models.Member, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.Member
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"achievements": a},
		"$set":  bson.M{"updated_at": time.Now()},
	}, opts).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Delete removes a member by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
