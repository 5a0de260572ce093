// internal/app/features/winners/winners.go
package winners

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	winnerstore "github.com/dalemusser/chapterhub/internal/app/store/winners"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleList returns snapshots newest first, optionally filtered by
// year.
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

	winners, err := h.Winners.List(ctx, year)
	if err != nil {
		h.Log.Error("list winners", zap.Error(err))
		httpjson.Internal(w, "failed to list winners")
		return
	}

	httpjson.OK(w, winners)
}

type freezeRequest struct {
	Month    string               `json:"month"`
	Year     int                  `json:"year"`
	Winner   models.WinnerEntry   `json:"winner"`
	TopThree []models.WinnerEntry `json:"topThree"`
}

// HandleFreeze records the month's standings as a permanent snapshot.
// The caller assembles the entries from the current leaderboard; one
// snapshot per month and year.
func (h *Handler) HandleFreeze(w http.ResponseWriter, r *http.Request) {
	var req freezeRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Month = strings.TrimSpace(req.Month)
	if req.Month == "" || req.Year == 0 {
		httpjson.BadRequest(w, "month and year are required")
		return
	}
	if req.Winner.MemberID.IsZero() {
		httpjson.BadRequest(w, "winner is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	w2, err := h.Winners.Create(ctx, models.MonthlyWinner{
		Month:    req.Month,
		Year:     req.Year,
		Winner:   req.Winner,
		TopThree: req.TopThree,
	})
	if err != nil {
		if err == winnerstore.ErrDuplicatePeriod {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.Log.Error("freeze winner snapshot", zap.Error(err))
		httpjson.Internal(w, "failed to record winner")
		return
	}

	httpjson.Created(w, w2)
}
