package submissionpolicy_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/policy/submissionpolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWithdrawOwner(t *testing.T) {
	ownerID := primitive.NewObjectID()
	sub := models.Submission{MemberID: ownerID}

	asOwner := auth.WithTestUser(httptest.NewRequest("DELETE", "/", nil),
		&auth.SessionUser{ID: ownerID.Hex(), Role: "member"})
	owner, ok := submissionpolicy.WithdrawOwner(asOwner, sub)
	if !ok || owner != ownerID {
		t.Errorf("owner withdraw: got (%v, %v)", owner, ok)
	}

	asOther := auth.WithTestUser(httptest.NewRequest("DELETE", "/", nil),
		&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "member"})
	if _, ok := submissionpolicy.WithdrawOwner(asOther, sub); ok {
		t.Error("non-owner should be denied")
	}

	asAdmin := auth.WithTestUser(httptest.NewRequest("DELETE", "/", nil),
		&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "admin"})
	owner, ok = submissionpolicy.WithdrawOwner(asAdmin, sub)
	if !ok || owner != primitive.NilObjectID {
		t.Errorf("admin withdraw: got (%v, %v), want nil owner filter", owner, ok)
	}

	if _, ok := submissionpolicy.WithdrawOwner(httptest.NewRequest("DELETE", "/", nil), sub); ok {
		t.Error("visitor should be denied")
	}
}
