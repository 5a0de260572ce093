// Package reportpolicy provides authorization policies for report access.
//
// Authorization rules:
//   - Admins can view, update, and delete any report
//   - Members can view only the reports they filed
//   - A reporter may withdraw their own report only while it is still open
package reportpolicy

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListScope represents the scope of reports a user can list.
type ListScope struct {
	// CanList indicates whether the user can list reports at all.
	CanList bool
	// All indicates whether the user sees every report.
	// If false, ReporterID restricts the listing to the user's own reports.
	All bool
	// ReporterID is the reporter the user is restricted to.
	ReporterID primitive.ObjectID
}

// CanListReports determines what scope of reports the current user can list.
//
// Authorization:
//   - Admin: sees all reports
//   - Member: sees only their own reports
//   - Visitors: cannot list reports
func CanListReports(r *http.Request) ListScope {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return ListScope{CanList: false}
	}
	if role == "admin" {
		return ListScope{CanList: true, All: true}
	}
	return ListScope{CanList: true, All: false, ReporterID: uid}
}

// WithdrawDecision is the outcome of a delete/withdraw check.
type WithdrawDecision int

const (
	// WithdrawAllowed means the user may delete the report.
	WithdrawAllowed WithdrawDecision = iota
	// WithdrawNotOwner means the report belongs to someone else.
	WithdrawNotOwner
	// WithdrawNotOpen means the reporter owns the report but it has
	// already been picked up by an admin.
	WithdrawNotOpen
)

// CanWithdraw decides whether the current user may delete the report.
//
// Authorization:
//   - Admin: may delete at any status
//   - Reporter: may withdraw their own report only while it is open
//   - Others: cannot delete reports
func CanWithdraw(r *http.Request, report models.Report) WithdrawDecision {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return WithdrawNotOwner
	}
	if role == "admin" {
		return WithdrawAllowed
	}
	if report.ReporterID != uid {
		return WithdrawNotOwner
	}
	if report.Status != models.ReportOpen {
		return WithdrawNotOpen
	}
	return WithdrawAllowed
}
