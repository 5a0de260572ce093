// internal/app/features/members/get.go
package members

import (
	"context"
	"net/http"

	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleGet returns a single member. The password hash never
// serializes (json:"-" on the model).
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	member, err := h.Members.GetByID(ctx, id)
	if err != nil {
		if err == memberstore.ErrNotFound {
			httpjson.NotFound(w, "member not found")
			return
		}
		h.Log.Error("get member", zap.Error(err))
		httpjson.Internal(w, "failed to load member")
		return
	}

	httpjson.OK(w, member)
}
