// internal/app/features/leaderboard/list.go
package leaderboard

import (
	"context"
	"net/http"
	"strconv"

	winnerstore "github.com/dalemusser/chapterhub/internal/app/store/winners"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// DefaultLimit is how many entries the leaderboard shows unless the
// caller asks for more.
const DefaultLimit = 20

// Entry is one leaderboard row.
type Entry struct {
	Rank           int    `json:"rank"`
	MemberID       string `json:"member_id"`
	Name           string `json:"name"`
	ProfileImage   string `json:"profile_image,omitempty"`
	Branch         string `json:"branch,omitempty"`
	Year           string `json:"year,omitempty"`
	Points         int    `json:"points"`
	EventsAttended int    `json:"events_attended"`
	Contributions  int    `json:"contributions"`
	Trend          string `json:"trend"`
	Change         int    `json:"change"`
}

// HandleList returns the current standings. Rank is the 1-based
// position in points-descending order; trend compares against the rank
// the member held in the most recent monthly snapshot.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLimit
	if raw := normalize.QueryParam(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpjson.BadRequest(w, "invalid limit")
			return
		}
		limit = n
	}
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

	entries, err := h.Project(ctx, limit, year)
	if err != nil {
		h.Log.Error("project leaderboard", zap.Error(err))
		httpjson.Internal(w, "failed to build leaderboard")
		return
	}

	httpjson.OK(w, entries)
}

// Project builds the ranked standings. Exported so the export feature
// can reuse the same projection.
func (h *Handler) Project(ctx context.Context, limit, year int) ([]Entry, error) {
	members, err := h.Members.Top(ctx, limit, year)
	if err != nil {
		return nil, err
	}

	previous := h.previousRanks(ctx)

	entries := make([]Entry, len(members))
	for i, m := range members {
		rank := i + 1
		e := Entry{
			Rank:           rank,
			MemberID:       m.ID.Hex(),
			Name:           m.Name,
			ProfileImage:   m.ProfileImage,
			Branch:         m.Branch,
			Year:           m.Year,
			Points:         m.Points,
			EventsAttended: m.EventsAttended,
			Contributions:  m.Contributions,
			Trend:          "same",
		}
		if prev, ok := previous[m.ID.Hex()]; ok && prev != rank {
			if rank < prev {
				e.Trend = "up"
			} else {
				e.Trend = "down"
			}
			e.Change = prev - rank
			if e.Change < 0 {
				e.Change = -e.Change
			}
		}
		entries[i] = e
	}
	return entries, nil
}

// previousRanks maps member id hex to the rank held in the latest
// winner snapshot. Missing snapshot means every member reads "same".
func (h *Handler) previousRanks(ctx context.Context) map[string]int {
	snapshot, err := h.Winners.Latest(ctx)
	if err != nil {
		if err != winnerstore.ErrNotFound {
			h.Log.Warn("load winner snapshot for trends", zap.Error(err))
		}
		return nil
	}

	ranks := make(map[string]int, len(snapshot.TopThree))
	for _, entry := range snapshot.TopThree {
		ranks[entry.MemberID.Hex()] = entry.Rank
	}
	return ranks
}
