package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMember creates an active member with the given name, email, and
// points.
func (f *Fixtures) CreateMember(ctx context.Context, name, email string, points int) models.Member {
	f.t.Helper()
	return f.createMember(ctx, name, email, models.RoleMember, points)
}

// CreateAdmin creates an active admin.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.Member {
	f.t.Helper()
	return f.createMember(ctx, name, email, models.RoleAdmin, 0)
}

func (f *Fixtures) createMember(ctx context.Context, name, email, role string, points int) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		Role:         role,
		Points:       points,
		JoinYear:     now.Year(),
		Achievements: []models.Achievement{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// CreateSubmission creates a pending submission for the given member.
func (f *Fixtures) CreateSubmission(ctx context.Context, member models.Member, title, category string, points int) models.Submission {
	f.t.Helper()

	sub := models.Submission{
		ID:          primitive.NewObjectID(),
		MemberID:    member.ID,
		MemberName:  member.Name,
		MemberEmail: member.Email,
		Title:       title,
		Description: "Test submission description",
		Category:    category,
		Points:      points,
		Status:      models.SubmissionPending,
		SubmittedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("submissions").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("failed to create test submission: %v", err)
	}
	return sub
}

// CreateReport creates an open report filed by the given member.
func (f *Fixtures) CreateReport(ctx context.Context, reporter models.Member, reportType, subject string) models.Report {
	f.t.Helper()

	r := models.Report{
		ID:            primitive.NewObjectID(),
		ReporterID:    reporter.ID,
		ReporterName:  reporter.Name,
		ReporterEmail: reporter.Email,
		Type:          reportType,
		Subject:       subject,
		Description:   "Test report description",
		Status:        models.ReportOpen,
		Priority:      models.PriorityMedium,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := f.db.Collection("reports").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test report: %v", err)
	}
	return r
}

// CreateEvent creates an event on the given date.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, date time.Time, eventType string) models.Event {
	f.t.Helper()

	status := models.EventCompleted
	if date.After(time.Now()) {
		status = models.EventUpcoming
	}

	e := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test event description",
		Date:        date,
		Location:    "Test Hall",
		Type:        eventType,
		Status:      status,
		IsPublic:    true,
		Year:        date.Year(),
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

// CreateWinnerSnapshot records a monthly winner snapshot built from the
// given ranked entries (first entry becomes the winner).
func (f *Fixtures) CreateWinnerSnapshot(ctx context.Context, month string, year int, entries []models.WinnerEntry) models.MonthlyWinner {
	f.t.Helper()

	if len(entries) == 0 {
		f.t.Fatal("CreateWinnerSnapshot needs at least one entry")
	}
	w := models.MonthlyWinner{
		ID:        primitive.NewObjectID(),
		Month:     month,
		Year:      year,
		Winner:    entries[0],
		TopThree:  entries,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("monthly_winners").InsertOne(ctx, w); err != nil {
		f.t.Fatalf("failed to create test winner snapshot: %v", err)
	}
	return w
}
