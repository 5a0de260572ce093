// internal/app/features/reports/reports.go
package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/chapterhub/internal/app/policy/reportpolicy"
	reportstore "github.com/dalemusser/chapterhub/internal/app/store/reports"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Type        string `json:"type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	RelatedTo   string `json:"relatedTo"`
}

// HandleCreate files a report. The reporter identity comes from the
// session and is snapshotted onto the record.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "authentication required")
		return
	}
	reporterID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	var req createRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Type = normalize.Category(req.Type)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Description = strings.TrimSpace(req.Description)

	if !models.IsValidReportType(req.Type) {
		httpjson.BadRequest(w, "invalid report type")
		return
	}
	if req.Subject == "" || req.Description == "" {
		httpjson.BadRequest(w, "subject and description are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	report, err := h.Reports.Create(ctx, models.Report{
		ReporterID:    reporterID,
		ReporterName:  u.Name,
		ReporterEmail: u.Email,
		Type:          req.Type,
		Subject:       req.Subject,
		Description:   htmlsanitize.Sanitize(req.Description),
		RelatedTo:     strings.TrimSpace(req.RelatedTo),
	})
	if err != nil {
		h.Log.Error("create report", zap.Error(err))
		httpjson.Internal(w, "failed to create report")
		return
	}

	httpjson.Created(w, report)
}

// HandleList returns reports newest first. Admins see everything;
// members see only what they filed.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	scope := reportpolicy.CanListReports(r)
	if !scope.CanList {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	f := reportstore.Filter{
		Status: normalize.Status(r.URL.Query().Get("status")),
		Type:   normalize.Category(r.URL.Query().Get("type")),
	}
	if !scope.All {
		f.ReporterID = scope.ReporterID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reports, err := h.Reports.List(ctx, f)
	if err != nil {
		h.Log.Error("list reports", zap.Error(err))
		httpjson.Internal(w, "failed to list reports")
		return
	}

	httpjson.OK(w, reports)
}

type updateRequest struct {
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	AdminResponse *string `json:"adminResponse"`
}

// HandleUpdate applies an admin's partial update. Status transitions
// are not restricted to forward-only; reopening a closed report is
// allowed.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid report id")
		return
	}

	var req updateRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	upd := reportstore.Update{AdminResponse: req.AdminResponse}
	if req.Status != nil {
		s := normalize.Status(*req.Status)
		if !models.IsValidReportStatus(s) {
			httpjson.BadRequest(w, "invalid status")
			return
		}
		upd.Status = &s
	}
	if req.Priority != nil {
		p := normalize.Status(*req.Priority)
		if p != models.PriorityLow && p != models.PriorityMedium && p != models.PriorityHigh {
			httpjson.BadRequest(w, "invalid priority")
			return
		}
		upd.Priority = &p
	}
	if req.AdminResponse != nil {
		clean := htmlsanitize.Sanitize(*req.AdminResponse)
		upd.AdminResponse = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	report, err := h.Reports.Apply(ctx, id, upd)
	if err != nil {
		if err == reportstore.ErrNotFound {
			httpjson.NotFound(w, "report not found")
			return
		}
		h.Log.Error("update report", zap.Error(err))
		httpjson.Internal(w, "failed to update report")
		return
	}

	httpjson.OK(w, report)
}

// HandleDelete removes a report. Admins may delete at any status; the
// reporter may withdraw their own report only while it is still open.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid report id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	report, err := h.Reports.GetByID(ctx, id)
	if err != nil {
		if err == reportstore.ErrNotFound {
			httpjson.NotFound(w, "report not found")
			return
		}
		h.Log.Error("load report for delete", zap.Error(err))
		httpjson.Internal(w, "failed to delete report")
		return
	}

	switch reportpolicy.CanWithdraw(r, *report) {
	case reportpolicy.WithdrawNotOwner:
		httpjson.Forbidden(w, "you may only withdraw your own reports")
		return
	case reportpolicy.WithdrawNotOpen:
		httpjson.BadRequest(w, "only open reports can be withdrawn")
		return
	}

	if _, err := h.Reports.Delete(ctx, id); err != nil {
		h.Log.Error("delete report", zap.Error(err))
		httpjson.Internal(w, "failed to delete report")
		return
	}

	httpjson.OKMessage(w, "report deleted")
}
