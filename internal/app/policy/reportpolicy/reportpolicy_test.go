package reportpolicy_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/policy/reportpolicy"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requestAs(id primitive.ObjectID, role string) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	return auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Name: "Test", Role: role})
}

func TestCanListReports_AdminSeesAll(t *testing.T) {
	scope := reportpolicy.CanListReports(requestAs(primitive.NewObjectID(), "admin"))
	if !scope.CanList || !scope.All {
		t.Errorf("admin scope: got %+v, want CanList+All", scope)
	}
}

func TestCanListReports_MemberRestrictedToOwn(t *testing.T) {
	uid := primitive.NewObjectID()
	scope := reportpolicy.CanListReports(requestAs(uid, "member"))
	if !scope.CanList || scope.All {
		t.Fatalf("member scope: got %+v", scope)
	}
	if scope.ReporterID != uid {
		t.Errorf("reporter restriction: got %v, want %v", scope.ReporterID, uid)
	}
}

func TestCanListReports_VisitorDenied(t *testing.T) {
	if scope := reportpolicy.CanListReports(httptest.NewRequest("GET", "/", nil)); scope.CanList {
		t.Error("expected visitors to be denied")
	}
}

func TestCanWithdraw(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	open := models.Report{ReporterID: owner, Status: models.ReportOpen}
	resolved := models.Report{ReporterID: owner, Status: models.ReportResolved}

	cases := []struct {
		name   string
		req    *http.Request
		report models.Report
		want   reportpolicy.WithdrawDecision
	}{
		{"owner may withdraw open", requestAs(owner, "member"), open, reportpolicy.WithdrawAllowed},
		{"owner blocked once resolved", requestAs(owner, "member"), resolved, reportpolicy.WithdrawNotOpen},
		{"other member blocked", requestAs(other, "member"), open, reportpolicy.WithdrawNotOwner},
		{"admin may delete resolved", requestAs(other, "admin"), resolved, reportpolicy.WithdrawAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reportpolicy.CanWithdraw(tc.req, tc.report); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
