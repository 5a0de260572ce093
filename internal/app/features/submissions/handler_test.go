package submissions_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/features/submissions"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*submissions.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := submissions.NewHandler(db, zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreate_DefaultsPointsFromCategory(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ana Torres", "ana@test.com", 0)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/submissions", map[string]any{
		"title":       "Led the mentoring program",
		"description": "Organized weekly mentoring sessions.",
		"category":    "leadership",
	})
	req = testutil.WithUser(req, testutil.UserFor(member))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var env struct {
		Success bool              `json:"success"`
		Data    models.Submission `json:"data"`
	}
	testutil.DecodeJSON(t, rec.Body, &env)

	if !env.Success {
		t.Fatal("expected success envelope")
	}
	if env.Data.Points != 20 {
		t.Errorf("leadership default points: got %d, want 20", env.Data.Points)
	}
	if env.Data.Status != models.SubmissionPending {
		t.Errorf("status: got %q, want pending", env.Data.Status)
	}
	if env.Data.MemberName != member.Name || env.Data.MemberEmail != member.Email {
		t.Errorf("identity snapshot not taken: got %q/%q", env.Data.MemberName, env.Data.MemberEmail)
	}
}

func TestHandleCreate_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/submissions", map[string]any{
		"title":       "x",
		"description": "y",
		"category":    "event",
	})
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestHandleCreate_InvalidCategory(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Ben Ortiz", "ben@test.com", 0)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/submissions", map[string]any{
		"title":       "Something",
		"description": "Something else",
		"category":    "sports",
	})
	req = testutil.WithUser(req, testutil.UserFor(member))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleReview_ApproveCreditsMember(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Cara Lim", "cara@test.com", 30)
	sub := fixtures.CreateSubmission(ctx, member, "Hosted the open day", models.CategoryEvent, 10)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/submissions/"+sub.ID.Hex(), map[string]any{
		"status":       "approved",
		"adminComment": "Well run.",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleReview(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got models.Member
	if err := fixtures.DB().Collection("members").
		FindOne(ctx, bson.M{"_id": member.ID}).Decode(&got); err != nil {
		t.Fatalf("reload member: %v", err)
	}

	if got.Points != 40 {
		t.Errorf("points: got %d, want 40", got.Points)
	}
	if got.Contributions != 1 {
		t.Errorf("contributions: got %d, want 1", got.Contributions)
	}
	if got.EventsAttended != 1 {
		t.Errorf("eventsAttended: got %d, want 1 for event category", got.EventsAttended)
	}
	if len(got.Achievements) != 1 {
		t.Fatalf("achievements: got %d, want 1", len(got.Achievements))
	}
	a := got.Achievements[0]
	if a.ID != sub.ID.Hex() {
		t.Errorf("achievement id: got %q, want submission hex %q", a.ID, sub.ID.Hex())
	}
	if a.Icon != "🎪" {
		t.Errorf("achievement icon: got %q, want 🎪", a.Icon)
	}
}

func TestHandleReview_NonEventCategoryLeavesEventsAttended(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Dev Rao", "dev@test.com", 0)
	sub := fixtures.CreateSubmission(ctx, member, "Wrote the newsletter", models.CategoryContribution, 15)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/submissions/"+sub.ID.Hex(), map[string]any{
		"status": "approved",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleReview(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var got models.Member
	if err := fixtures.DB().Collection("members").
		FindOne(ctx, bson.M{"_id": member.ID}).Decode(&got); err != nil {
		t.Fatalf("reload member: %v", err)
	}
	if got.EventsAttended != 0 {
		t.Errorf("eventsAttended: got %d, want 0 for contribution category", got.EventsAttended)
	}
	if got.Points != 15 {
		t.Errorf("points: got %d, want 15", got.Points)
	}
}

func TestHandleReview_RejectNeverMutatesMember(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Eli Sand", "eli@test.com", 25)
	sub := fixtures.CreateSubmission(ctx, member, "Claimed workshop", models.CategoryExcellence, 25)

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/submissions/"+sub.ID.Hex(), map[string]any{
		"status":       "rejected",
		"adminComment": "No proof attached.",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleReview(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var env struct {
		Data models.Submission `json:"data"`
	}
	testutil.DecodeJSON(t, rec.Body, &env)
	if env.Data.Status != models.SubmissionRejected {
		t.Errorf("status: got %q, want rejected", env.Data.Status)
	}
	if env.Data.AdminComment != "No proof attached." {
		t.Errorf("adminComment: got %q", env.Data.AdminComment)
	}
	if env.Data.ReviewedAt == nil {
		t.Error("reviewedAt not stamped")
	}

	var got models.Member
	if err := fixtures.DB().Collection("members").
		FindOne(ctx, bson.M{"_id": member.ID}).Decode(&got); err != nil {
		t.Fatalf("reload member: %v", err)
	}
	if got.Points != 25 || got.Contributions != 0 || len(got.Achievements) != 0 {
		t.Errorf("rejection mutated member: points=%d contributions=%d achievements=%d",
			got.Points, got.Contributions, len(got.Achievements))
	}
}

func TestHandleReview_AlreadyReviewed(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Fay Wu", "fay@test.com", 0)
	sub := fixtures.CreateSubmission(ctx, member, "Volunteer day", models.CategoryEvent, 10)

	for i, want := range []int{http.StatusOK, http.StatusBadRequest} {
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/submissions/"+sub.ID.Hex(), map[string]any{
			"status": "rejected",
		})
		req = testutil.WithUser(req, testutil.AdminUser())
		req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleReview(rec.ResponseRecorder, req)

		if rec.Code != want {
			t.Fatalf("review #%d: got status %d, want %d", i+1, rec.Code, want)
		}
	}
}

func TestHandleDelete_OwnerWhilePending(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Gus Hall", "gus@test.com", 0)
	sub := fixtures.CreateSubmission(ctx, member, "Draft entry", models.CategoryContribution, 15)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/submissions/"+sub.ID.Hex(), testutil.UserFor(member))
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	n, err := fixtures.DB().Collection("submissions").CountDocuments(ctx, bson.M{"_id": sub.ID})
	if err != nil {
		t.Fatalf("count submissions: %v", err)
	}
	if n != 0 {
		t.Error("submission still present after withdrawal")
	}
}

func TestHandleDelete_WrongOwnerForbidden(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateMember(ctx, "Ivy Chen", "ivy@test.com", 0)
	other := fixtures.CreateMember(ctx, "Jon Beck", "jon@test.com", 0)
	sub := fixtures.CreateSubmission(ctx, owner, "Owner's entry", models.CategoryEvent, 10)

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/submissions/"+sub.ID.Hex(), testutil.UserFor(other))
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleDelete_NonPendingInvalidState(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Kim Soto", "kim@test.com", 0)
	sub := fixtures.CreateSubmission(ctx, member, "Approved entry", models.CategoryEvent, 10)

	if _, err := fixtures.DB().Collection("submissions").UpdateOne(ctx,
		bson.M{"_id": sub.ID},
		bson.M{"$set": bson.M{"status": models.SubmissionApproved}}); err != nil {
		t.Fatalf("mark approved: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/submissions/"+sub.ID.Hex(), testutil.UserFor(member))
	req = testutil.WithChiURLParam(req, "id", sub.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)

	var env httpjson.Envelope
	testutil.DecodeJSON(t, rec.Body, &env)
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestHandleList_FiltersByStatus(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Lia Ford", "lia@test.com", 0)
	fixtures.CreateSubmission(ctx, member, "First", models.CategoryEvent, 10)
	rejected := fixtures.CreateSubmission(ctx, member, "Second", models.CategoryEvent, 10)
	if _, err := fixtures.DB().Collection("submissions").UpdateOne(ctx,
		bson.M{"_id": rejected.ID},
		bson.M{"$set": bson.M{"status": models.SubmissionRejected}}); err != nil {
		t.Fatalf("mark rejected: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/submissions?status=pending", testutil.UserFor(member))
	rec := testutil.NewRecorder()
	h.HandleList(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var env struct {
		Data []models.Submission `json:"data"`
	}
	testutil.DecodeJSON(t, rec.Body, &env)
	if len(env.Data) != 1 {
		t.Fatalf("filtered list: got %d submissions, want 1", len(env.Data))
	}
	if env.Data[0].Title != "First" {
		t.Errorf("wrong submission returned: %q", env.Data[0].Title)
	}
}
