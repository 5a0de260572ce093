// internal/app/features/members/delete.go
package members

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete removes a member. Approved history stays on the
// submissions collection via the identity snapshots.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid member id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Members.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete member", zap.Error(err))
		httpjson.Internal(w, "failed to delete member")
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "member not found")
		return
	}

	httpjson.OKMessage(w, "member deleted")
}
