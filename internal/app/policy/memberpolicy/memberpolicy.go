// Package memberpolicy provides authorization policies for member profiles.
//
// Authorization rules:
//   - Admins can edit any member, including the scoring counters
//   - Members can edit only their own bio and profile image
//   - Counters (points, events attended, contributions) are admin-only
package memberpolicy

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanEditProfile reports whether the current user may edit the given
// member's profile fields.
//
// Authorization:
//   - Admin: can edit any member
//   - Member: can edit only their own record
//   - Others: cannot edit profiles
func CanEditProfile(r *http.Request, memberID primitive.ObjectID) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == "admin" {
		return true
	}
	return uid == memberID
}

// CanEditCounters reports whether the current user may override the
// scoring counters. Points come from the approval flow, so manual
// overrides are restricted to admins.
func CanEditCounters(r *http.Request) bool {
	return authz.IsAdmin(r)
}
