package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	role, name, userID, ok := authz.UserCtx(req)
	if ok {
		t.Fatal("expected ok=false without a session user")
	}
	if role != "visitor" || name != "" || userID != primitive.NilObjectID {
		t.Errorf("got role=%q name=%q id=%v", role, name, userID)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-objectid", Role: "member"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Name: "Jane", Role: "Admin"})

	role, name, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "admin" {
		t.Errorf("role: got %q, want lowercased %q", role, "admin")
	}
	if name != "Jane" || userID != id {
		t.Errorf("got name=%q id=%v", name, userID)
	}
}

func TestIsAdmin(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	admin := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: id, Role: "admin"})
	if !authz.IsAdmin(admin) {
		t.Error("expected IsAdmin=true for admin")
	}

	member := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: id, Role: "member"})
	if authz.IsAdmin(member) {
		t.Error("expected IsAdmin=false for member")
	}
}

func TestHasAnyRole(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: id, Role: "member"})

	if !authz.HasAnyRole(req, "admin", "member") {
		t.Error("expected member to match [admin, member]")
	}
	if authz.HasAnyRole(req, "admin") {
		t.Error("expected member not to match [admin]")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), "member") {
		t.Error("expected no match without a user")
	}
}
