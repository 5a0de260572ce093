// internal/app/features/members/achievement.go
package members

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type awardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

// HandleAwardAchievement appends a manually-awarded achievement to a
// member. Manual awards get a generated id and do not touch points or
// counters; the submission review flow is the only path that credits.
func (h *Handler) HandleAwardAchievement(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid member id")
		return
	}

	var req awardRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httpjson.BadRequest(w, "title is required")
		return
	}
	req.Category = normalize.Category(req.Category)
	if req.Category != "" && !models.IsValidCategory(req.Category) {
		httpjson.BadRequest(w, "invalid category")
		return
	}

	icon := req.Icon
	if icon == "" {
		icon = models.CategoryIcon(req.Category)
	}

	a := models.Achievement{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Date:        time.Now(),
		Category:    req.Category,
		Icon:        icon,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.Members.AppendAchievement(ctx, id, a)
	if err != nil {
		if err == memberstore.ErrNotFound {
			httpjson.NotFound(w, "member not found")
			return
		}
		h.Log.Error("award achievement", zap.Error(err))
		httpjson.Internal(w, "failed to award achievement")
		return
	}

	httpjson.OK(w, member)
}
