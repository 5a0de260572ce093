// internal/app/features/progress/progress.go
package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleList returns progress entries, optionally filtered by year.
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

	entries, err := h.Progress.List(ctx, year)
	if err != nil {
		h.Log.Error("list progress", zap.Error(err))
		httpjson.Internal(w, "failed to list progress")
		return
	}

	httpjson.OK(w, entries)
}

type createRequest struct {
	Month     string `json:"month"`
	Year      int    `json:"year"`
	Events    int    `json:"events"`
	Members   int    `json:"members"`
	Documents int    `json:"documents"`
	Target    int    `json:"target"`
}

// HandleCreate records a monthly progress entry.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entry, err := h.Progress.Create(ctx, models.Progress{
		Month:     req.Month,
		Year:      req.Year,
		Events:    req.Events,
		Members:   req.Members,
		Documents: req.Documents,
		Target:    req.Target,
	})
	if err != nil {
		h.Log.Error("create progress entry", zap.Error(err))
		httpjson.Internal(w, "failed to record progress")
		return
	}

	httpjson.Created(w, entry)
}
