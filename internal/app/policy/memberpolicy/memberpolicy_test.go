package memberpolicy_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanEditProfile(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	asSelf := auth.WithTestUser(httptest.NewRequest("PATCH", "/", nil),
		&auth.SessionUser{ID: self.Hex(), Role: "member"})
	if !memberpolicy.CanEditProfile(asSelf, self) {
		t.Error("member should edit own profile")
	}
	if memberpolicy.CanEditProfile(asSelf, other) {
		t.Error("member should not edit another profile")
	}

	asAdmin := auth.WithTestUser(httptest.NewRequest("PATCH", "/", nil),
		&auth.SessionUser{ID: other.Hex(), Role: "admin"})
	if !memberpolicy.CanEditProfile(asAdmin, self) {
		t.Error("admin should edit any profile")
	}

	if memberpolicy.CanEditProfile(httptest.NewRequest("PATCH", "/", nil), self) {
		t.Error("visitor should not edit profiles")
	}
}

func TestCanEditCounters(t *testing.T) {
	id := primitive.NewObjectID()

	asMember := auth.WithTestUser(httptest.NewRequest("PATCH", "/", nil),
		&auth.SessionUser{ID: id.Hex(), Role: "member"})
	if memberpolicy.CanEditCounters(asMember) {
		t.Error("counters are admin-only")
	}

	asAdmin := auth.WithTestUser(httptest.NewRequest("PATCH", "/", nil),
		&auth.SessionUser{ID: id.Hex(), Role: "admin"})
	if !memberpolicy.CanEditCounters(asAdmin) {
		t.Error("admin should edit counters")
	}
}
