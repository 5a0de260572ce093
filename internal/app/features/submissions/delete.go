// internal/app/features/submissions/delete.go
package submissions

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/policy/submissionpolicy"
	submissionstore "github.com/dalemusser/chapterhub/internal/app/store/submissions"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete withdraws a submission. Only the owner may withdraw,
// and only while the submission is still pending.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		httpjson.Unauthorized(w, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid submission id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sub, err := h.Submissions.GetByID(ctx, id)
	if err != nil {
		if err == submissionstore.ErrNotFound {
			httpjson.NotFound(w, "submission not found")
			return
		}
		h.Log.Error("load submission for delete", zap.Error(err))
		httpjson.Internal(w, "failed to delete submission")
		return
	}

	owner, allowed := submissionpolicy.WithdrawOwner(r, *sub)
	if !allowed {
		httpjson.Forbidden(w, "you may only withdraw your own submissions")
		return
	}

	if err := h.Submissions.DeletePending(ctx, id, owner); err != nil {
		switch err {
		case submissionstore.ErrNotFound:
			httpjson.NotFound(w, "submission not found")
		case submissionstore.ErrNotPending:
			httpjson.BadRequest(w, "only pending submissions can be withdrawn")
		default:
			h.Log.Error("delete submission", zap.Error(err))
			httpjson.Internal(w, "failed to delete submission")
		}
		return
	}

	httpjson.OKMessage(w, "submission withdrawn")
}
