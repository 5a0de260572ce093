// internal/app/features/submissions/list.go
package submissions

import (
	"context"
	"net/http"

	submissionstore "github.com/dalemusser/chapterhub/internal/app/store/submissions"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList returns submissions newest first, optionally filtered by
// status and/or member.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	f := submissionstore.Filter{
		Status: normalize.Status(r.URL.Query().Get("status")),
	}

	if raw := normalize.QueryParam(r.URL.Query().Get("memberId")); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.BadRequest(w, "invalid memberId")
			return
		}
		f.MemberID = oid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subs, err := h.Submissions.List(ctx, f)
	if err != nil {
		h.Log.Error("list submissions", zap.Error(err))
		httpjson.Internal(w, "failed to list submissions")
		return
	}

	httpjson.OK(w, subs)
}
