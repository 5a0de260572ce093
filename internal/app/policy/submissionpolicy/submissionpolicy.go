// Package submissionpolicy provides authorization policies for
// achievement submissions.
//
// Authorization rules:
//   - Admins can withdraw any pending submission
//   - Members can withdraw only their own pending submissions
//   - Reviewed submissions cannot be withdrawn by anyone (the store
//     enforces the pending check; policy enforces ownership)
package submissionpolicy

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithdrawOwner decides whether the current user may withdraw the
// submission, and returns the owner filter to apply at the store. For
// admins the filter is NilObjectID, which skips the ownership check.
func WithdrawOwner(r *http.Request, sub models.Submission) (primitive.ObjectID, bool) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	if role == "admin" {
		return primitive.NilObjectID, true
	}
	if sub.MemberID != uid {
		return primitive.NilObjectID, false
	}
	return sub.MemberID, true
}
