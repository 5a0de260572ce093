// internal/app/features/submissions/review.go
package submissions

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	submissionstore "github.com/dalemusser/chapterhub/internal/app/store/submissions"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/txn"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type reviewRequest struct {
	Status       string `json:"status"`
	AdminComment string `json:"adminComment"`
}

// HandleReview decides a pending submission. Approval stamps the
// review fields and credits the member in the same transaction when
// the deployment supports one; rejection only stamps the review
// fields.
func (h *Handler) HandleReview(w http.ResponseWriter, r *http.Request) {
	_, reviewerName, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid submission id")
		return
	}

	var req reviewRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Status = normalize.Status(req.Status)
	if req.Status != models.SubmissionApproved && req.Status != models.SubmissionRejected {
		httpjson.BadRequest(w, `status must be "approved" or "rejected"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var reviewed *models.Submission
	err = txn.Run(ctx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		sub, err := h.Submissions.MarkReviewed(ctx, id, req.Status,
			strings.TrimSpace(req.AdminComment), reviewerName)
		if err != nil {
			return err
		}
		reviewed = sub

		if sub.Status != models.SubmissionApproved {
			return nil
		}
		return h.creditMember(ctx, sub)
	})
	if err != nil {
		switch err {
		case submissionstore.ErrNotFound:
			httpjson.NotFound(w, "submission not found")
		case submissionstore.ErrNotPending:
			httpjson.BadRequest(w, "submission has already been reviewed")
		default:
			h.Log.Error("review submission", zap.String("id", id.Hex()), zap.Error(err))
			httpjson.Internal(w, "failed to review submission")
		}
		return
	}

	httpjson.OK(w, reviewed)
}

// creditMember applies an approval's member-side effects. A member that
// has been deleted since submitting is not an error: the decision
// stands and the credit is skipped.
func (h *Handler) creditMember(ctx context.Context, sub *models.Submission) error {
	achievement := models.Achievement{
		ID:          sub.ID.Hex(),
		Title:       sub.Title,
		Description: sub.Description,
		Date:        time.Now(),
		Category:    sub.Category,
		Icon:        models.CategoryIcon(sub.Category),
	}

	err := h.Members.Credit(ctx, sub.MemberID, achievement, sub.Points)
	if err == memberstore.ErrNotFound {
		h.Log.Warn("member missing at credit time, skipping credit",
			zap.String("submission_id", sub.ID.Hex()),
			zap.String("member_id", sub.MemberID.Hex()))
		return nil
	}
	return err
}
