package documents_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/features/documents"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*documents.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	local, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/files/documents",
	})
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}

	h := documents.NewHandler(db, local, zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreate_RecordsExternalLink(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/documents", map[string]any{
		"name":     "Annual report 2025",
		"type":     "PDF",
		"category": "report",
		"year":     2025,
		"fileLink": "https://drive.example.com/d/abc123",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var env struct {
		Data models.Document `json:"data"`
	}
	testutil.DecodeJSON(t, rec.Body, &env)
	if env.Data.FileLink != "https://drive.example.com/d/abc123" {
		t.Errorf("fileLink: got %q", env.Data.FileLink)
	}
	if env.Data.Year != 2025 {
		t.Errorf("year: got %d, want 2025", env.Data.Year)
	}
}

func TestHandleCreate_InvalidCategory(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/documents", map[string]any{
		"name":     "Oddball",
		"category": "misc",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleUpload_StoresFileAndRecord(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "minutes.txt")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write([]byte("meeting minutes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.WriteField("category", "document"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/documents/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := testutil.NewRecorder()
	h.HandleUpload(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var env struct {
		Data models.Document `json:"data"`
	}
	testutil.DecodeJSON(t, rec.Body, &env)
	if !strings.HasPrefix(env.Data.FileID, "documents/") {
		t.Errorf("fileId not a storage path: %q", env.Data.FileID)
	}
	if env.Data.Type != "TXT" {
		t.Errorf("type: got %q, want TXT", env.Data.Type)
	}

	n, err := fixtures.DB().Collection("documents").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d document records, want 1", n)
	}
}

func TestHandleYears_DescendingDistinct(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, year := range []int{2024, 2026, 2024, 2025} {
		if _, err := fixtures.DB().Collection("documents").InsertOne(ctx, models.Document{
			Name: "doc", Category: "document", Year: year,
		}); err != nil {
			t.Fatalf("insert document: %v", err)
		}
	}

	req := testutil.NewRequest(http.MethodGet, "/years")
	rec := testutil.NewRecorder()
	h.HandleYears(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var env struct {
		Data []int `json:"data"`
	}
	testutil.DecodeJSON(t, rec.Body, &env)
	want := []int{2026, 2025, 2024}
	if len(env.Data) != len(want) {
		t.Fatalf("got %v, want %v", env.Data, want)
	}
	for i := range want {
		if env.Data[i] != want[i] {
			t.Errorf("years: got %v, want %v", env.Data, want)
			break
		}
	}
}
