// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.uber.org/zap"
)

// rankedMember is a member with its 1-based position in the
// points-descending order.
type rankedMember struct {
	models.Member
	Rank int `json:"rank"`
}

// HandleList returns all members sorted by points descending with a
// computed rank, optionally filtered by join year.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := normalize.QueryParam(r.URL.Query().Get("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			httpjson.BadRequest(w, "invalid year")
			return
		}
		year = y
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Members.List(ctx, year)
	if err != nil {
		h.Log.Error("list members", zap.Error(err))
		httpjson.Internal(w, "failed to list members")
		return
	}

	ranked := make([]rankedMember, len(members))
	for i, m := range members {
		ranked[i] = rankedMember{Member: m, Rank: i + 1}
	}

	httpjson.OK(w, ranked)
}
