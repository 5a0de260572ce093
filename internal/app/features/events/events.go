// internal/app/features/events/events.go
package events

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	eventstore "github.com/dalemusser/chapterhub/internal/app/store/events"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList returns events. Visitors and members see public events;
// admins also see unlisted ones.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	f := eventstore.Filter{
		Type:       normalize.Category(r.URL.Query().Get("type")),
		Status:     normalize.Status(r.URL.Query().Get("status")),
		Upcoming:   r.URL.Query().Get("upcoming") == "true",
		PublicOnly: !authz.IsAdmin(r),
	}
	if raw := normalize.QueryParam(r.URL.Query().Get("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			httpjson.BadRequest(w, "invalid year")
			return
		}
		f.Year = y
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.List(ctx, f)
	if err != nil {
		h.Log.Error("list events", zap.Error(err))
		httpjson.Internal(w, "failed to list events")
		return
	}

	httpjson.OK(w, events)
}

type createRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Date             time.Time  `json:"date"`
	EndDate          *time.Time `json:"endDate"`
	Time             string     `json:"time"`
	Location         string     `json:"location"`
	Type             string     `json:"type"`
	RegistrationLink string     `json:"registrationLink"`
	MaxParticipants  int        `json:"maxParticipants"`
	Organizer        string     `json:"organizer"`
	IsPublic         *bool      `json:"isPublic"`
}

// HandleCreate adds an event. Status and year derive from the date.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, _, _ := authz.UserCtx(r)

	var req createRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Type = normalize.Category(req.Type)

	if req.Title == "" {
		httpjson.BadRequest(w, "title is required")
		return
	}
	if req.Date.IsZero() {
		httpjson.BadRequest(w, "date is required")
		return
	}
	if !models.IsValidEventType(req.Type) {
		httpjson.BadRequest(w, "invalid event type")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	event, err := h.Events.Create(ctx, models.Event{
		Title:            req.Title,
		Description:      htmlsanitize.Sanitize(req.Description),
		Date:             req.Date,
		EndDate:          req.EndDate,
		Time:             strings.TrimSpace(req.Time),
		Location:         strings.TrimSpace(req.Location),
		Type:             req.Type,
		RegistrationLink: strings.TrimSpace(req.RegistrationLink),
		MaxParticipants:  req.MaxParticipants,
		Organizer:        strings.TrimSpace(req.Organizer),
		IsPublic:         isPublic,
		CreatedBy:        name,
	})
	if err != nil {
		h.Log.Error("create event", zap.Error(err))
		httpjson.Internal(w, "failed to create event")
		return
	}

	httpjson.Created(w, event)
}

// HandleDelete removes an event.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Events.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete event", zap.Error(err))
		httpjson.Internal(w, "failed to delete event")
		return
	}
	if n == 0 {
		httpjson.NotFound(w, "event not found")
		return
	}

	httpjson.OKMessage(w, "event deleted")
}
