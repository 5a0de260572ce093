// internal/app/features/submissions/create.go
package submissions

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Proof       string `json:"proof"`
	Points      int    `json:"points"`
}

// HandleCreate files a new pending submission for the signed-in member.
// The member's name and email are snapshotted onto the submission so
// the review queue stays readable even if the member record changes.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	var req createRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = normalize.Category(req.Category)

	if req.Title == "" || req.Description == "" {
		httpjson.BadRequest(w, "title and description are required")
		return
	}
	if !models.IsValidCategory(req.Category) {
		httpjson.BadRequest(w, "invalid category")
		return
	}
	if req.Points < 0 {
		httpjson.BadRequest(w, "points must be >= 0")
		return
	}
	if req.Points == 0 {
		req.Points = models.CategoryDefaultPoints(req.Category)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.Members.GetByID(ctx, uid)
	if err != nil {
		if err == memberstore.ErrNotFound {
			httpjson.NotFound(w, "member not found")
			return
		}
		h.Log.Error("resolve member for submission", zap.Error(err))
		httpjson.Internal(w, "failed to create submission")
		return
	}

	sub, err := h.Submissions.Create(ctx, models.Submission{
		MemberID:    member.ID,
		MemberName:  member.Name,
		MemberEmail: member.Email,
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		Category:    req.Category,
		Proof:       strings.TrimSpace(req.Proof),
		Points:      req.Points,
	})
	if err != nil {
		h.Log.Error("create submission", zap.Error(err))
		httpjson.Internal(w, "failed to create submission")
		return
	}

	httpjson.Created(w, sub)
}
