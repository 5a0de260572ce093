package export_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/features/export"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*export.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := export.NewHandler(db, zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleExport_MembersCSVShape(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMember(ctx, "Plain Name", "plain@test.com", 30)
	fixtures.CreateMember(ctx, "Comma, Name", "comma@test.com", 20)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/export?type=members&format=csv", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleExport(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type: got %q", ct)
	}

	lines := strings.Split(rec.Body.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Rank,Name,Email") {
		t.Errorf("header line: %q", lines[0])
	}
	// Quoting only when the value itself contains a comma.
	if !strings.Contains(rec.Body.String(), `"Comma, Name"`) {
		t.Error("comma-bearing value not quoted")
	}
	if strings.Contains(lines[1]+lines[2], `"Plain Name"`) {
		t.Error("plain value needlessly quoted")
	}
}

func TestHandleExport_JSONCarriesHeadersAndFilename(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMember(ctx, "Solo", "solo@test.com", 10)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/export?type=leaderboard&format=json", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleExport(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var env struct {
		Data struct {
			Data     [][]string `json:"data"`
			Headers  []string   `json:"headers"`
			Filename string     `json:"filename"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, rec.Body, &env)

	if len(env.Data.Headers) == 0 || env.Data.Headers[0] != "Rank" {
		t.Errorf("headers: %v", env.Data.Headers)
	}
	if len(env.Data.Data) != 1 {
		t.Errorf("rows: got %d, want 1", len(env.Data.Data))
	}
	if !strings.HasPrefix(env.Data.Filename, "leaderboard_") || !strings.HasSuffix(env.Data.Filename, ".json") {
		t.Errorf("filename: %q", env.Data.Filename)
	}
}

func TestHandleExport_AchievementsDefaultsToApproved(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := fixtures.CreateMember(ctx, "Exporter", "exporter@test.com", 0)
	fixtures.CreateSubmission(ctx, member, "Pending entry", models.CategoryEvent, 10)
	approved := fixtures.CreateSubmission(ctx, member, "Approved entry", models.CategoryEvent, 10)
	if _, err := fixtures.DB().Collection("submissions").UpdateByID(ctx, approved.ID,
		map[string]any{"$set": map[string]any{"status": models.SubmissionApproved}}); err != nil {
		t.Fatalf("approve submission: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/export?type=achievements", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleExport(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	body := rec.Body.String()
	if !strings.Contains(body, "Approved entry") {
		t.Error("approved submission missing from export")
	}
	if strings.Contains(body, "Pending entry") {
		t.Error("pending submission leaked into default export")
	}
}

func TestHandleExport_UnknownType(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/export?type=budgets", testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleExport(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}
