package httpjson_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) httpjson.Envelope {
	t.Helper()
	var env httpjson.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.OK(rec, map[string]int{"points": 20})

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	env := decode(t, rec)
	if !env.Success {
		t.Error("expected success=true")
	}
	if env.Error != "" {
		t.Errorf("unexpected error: %q", env.Error)
	}
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Created(rec, "new-id")

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if env := decode(t, rec); !env.Success {
		t.Error("expected success=true")
	}
}

func TestFailVariants(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(http.ResponseWriter, string)
		status int
	}{
		{"BadRequest", httpjson.BadRequest, http.StatusBadRequest},
		{"Unauthorized", httpjson.Unauthorized, http.StatusUnauthorized},
		{"Forbidden", httpjson.Forbidden, http.StatusForbidden},
		{"NotFound", httpjson.NotFound, http.StatusNotFound},
		{"Internal", httpjson.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec, "boom")

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			env := decode(t, rec)
			if env.Success {
				t.Error("expected success=false")
			}
			if env.Error != "boom" {
				t.Errorf("error: got %q, want %q", env.Error, "boom")
			}
		})
	}
}
