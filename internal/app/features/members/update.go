// internal/app/features/members/update.go
package members

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type updateRequest struct {
	Points         *int    `json:"points"`
	EventsAttended *int    `json:"eventsAttended"`
	Contributions  *int    `json:"contributions"`
	Bio            *string `json:"bio"`
	ProfileImage   *string `json:"profileImage"`
}

func (r updateRequest) touchesCounters() bool {
	return r.Points != nil || r.EventsAttended != nil || r.Contributions != nil
}

// HandleUpdate applies a partial member update. Members may edit their
// own bio and profile image; counter overrides are admin-only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid member id")
		return
	}

	var req updateRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	if !memberpolicy.CanEditProfile(r, id) {
		httpjson.Forbidden(w, "you may only edit your own profile")
		return
	}
	if req.touchesCounters() && !memberpolicy.CanEditCounters(r) {
		httpjson.Forbidden(w, "only admins may change points or counters")
		return
	}
	if req.Points != nil && *req.Points < 0 {
		httpjson.BadRequest(w, "points must be >= 0")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var updated interface{}
	if req.Bio != nil || req.ProfileImage != nil {
		profile := memberstore.ProfileUpdate{ProfileImage: req.ProfileImage}
		if req.Bio != nil {
			clean := htmlsanitize.Sanitize(*req.Bio)
			profile.Bio = &clean
		}
		m, err := h.Members.UpdateProfile(ctx, id, profile)
		if err != nil {
			h.writeUpdateErr(w, err)
			return
		}
		updated = m
	}
	if req.touchesCounters() {
		m, err := h.Members.UpdateCounters(ctx, id, memberstore.CounterUpdate{
			Points:         req.Points,
			EventsAttended: req.EventsAttended,
			Contributions:  req.Contributions,
		})
		if err != nil {
			h.writeUpdateErr(w, err)
			return
		}
		updated = m
	}

	if updated == nil {
		httpjson.BadRequest(w, "no updatable fields provided")
		return
	}
	httpjson.OK(w, updated)
}

func (h *Handler) writeUpdateErr(w http.ResponseWriter, err error) {
	if err == memberstore.ErrNotFound {
		httpjson.NotFound(w, "member not found")
		return
	}
	h.Log.Error("update member", zap.Error(err))
	httpjson.Internal(w, "failed to update member")
}
