// internal/app/features/export/export.go
package export

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	submissionstore "github.com/dalemusser/chapterhub/internal/app/store/submissions"
	"github.com/dalemusser/chapterhub/internal/app/system/csvutil"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.uber.org/zap"
)

// leaderboardExportLimit caps the leaderboard export independently of
// the live view's default.
const leaderboardExportLimit = 50

type dataset struct {
	headers []string
	rows    [][]string
}

// jsonExport is the JSON-format payload; the client renders it into a
// PDF.
type jsonExport struct {
	Data       [][]string `json:"data"`
	Headers    []string   `json:"headers"`
	Filename   string     `json:"filename"`
	ExportedAt time.Time  `json:"exportedAt"`
}

// HandleExport streams one of the exportable datasets as CSV or JSON.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	exportType := normalize.Category(r.URL.Query().Get("type"))
	format := normalize.Category(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		httpjson.BadRequest(w, `format must be "csv" or "json"`)
		return
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
	status := normalize.Status(r.URL.Query().Get("status"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		ds  dataset
		err error
	)
	switch exportType {
	case "members":
		ds, err = h.membersDataset(ctx, year)
	case "leaderboard":
		ds, err = h.leaderboardDataset(ctx, year)
	case "winners":
		ds, err = h.winnersDataset(ctx, year)
	case "achievements":
		ds, err = h.achievementsDataset(ctx, status)
	default:
		httpjson.BadRequest(w, "type must be one of members, leaderboard, winners, achievements")
		return
	}
	if err != nil {
		h.Log.Error("build export", zap.String("type", exportType), zap.Error(err))
		httpjson.Internal(w, "failed to build export")
		return
	}

	filename := fmt.Sprintf("%s_%s.%s", exportType, time.Now().Format("2006-01-02"), format)

	if format == "json" {
		httpjson.OK(w, jsonExport{
			Data:       ds.rows,
			Headers:    ds.headers,
			Filename:   filename,
			ExportedAt: time.Now(),
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(csvutil.Generate(ds.headers, ds.rows)))
}

func (h *Handler) membersDataset(ctx context.Context, year int) (dataset, error) {
	members, err := h.Members.List(ctx, year)
	if err != nil {
		return dataset{}, err
	}

	ds := dataset{headers: []string{
		"Rank", "Name", "Email", "Branch", "Year", "Points",
		"Events Attended", "Contributions", "Join Year",
	}}
	for i, m := range members {
		ds.rows = append(ds.rows, []string{
			strconv.Itoa(i + 1), m.Name, m.Email, m.Branch, m.Year,
			strconv.Itoa(m.Points), strconv.Itoa(m.EventsAttended),
			strconv.Itoa(m.Contributions), strconv.Itoa(m.JoinYear),
		})
	}
	return ds, nil
}

func (h *Handler) leaderboardDataset(ctx context.Context, year int) (dataset, error) {
	entries, err := h.Leaderboard.Project(ctx, leaderboardExportLimit, year)
	if err != nil {
		return dataset{}, err
	}

	ds := dataset{headers: []string{
		"Rank", "Name", "Points", "Events Attended", "Contributions", "Trend",
	}}
	for _, e := range entries {
		ds.rows = append(ds.rows, []string{
			strconv.Itoa(e.Rank), e.Name, strconv.Itoa(e.Points),
			strconv.Itoa(e.EventsAttended), strconv.Itoa(e.Contributions), e.Trend,
		})
	}
	return ds, nil
}

func (h *Handler) winnersDataset(ctx context.Context, year int) (dataset, error) {
	winners, err := h.Winners.List(ctx, year)
	if err != nil {
		return dataset{}, err
	}

	ds := dataset{headers: []string{"Month", "Year", "Winner", "Points", "Top Three"}}
	for _, w := range winners {
		top := ""
		for i, e := range w.TopThree {
			if i > 0 {
				top += "; "
			}
			top += fmt.Sprintf("%d. %s (%d)", e.Rank, e.Name, e.Points)
		}
		ds.rows = append(ds.rows, []string{
			w.Month, strconv.Itoa(w.Year), w.Winner.Name,
			strconv.Itoa(w.Winner.Points), top,
		})
	}
	return ds, nil
}

func (h *Handler) achievementsDataset(ctx context.Context, status string) (dataset, error) {
	if status == "" {
		status = models.SubmissionApproved
	}
	subs, err := h.Submissions.List(ctx, submissionstore.Filter{Status: status})
	if err != nil {
		return dataset{}, err
	}

	ds := dataset{headers: []string{
		"Member", "Email", "Title", "Category", "Points", "Status", "Submitted",
	}}
	for _, s := range subs {
		ds.rows = append(ds.rows, []string{
			s.MemberName, s.MemberEmail, s.Title, s.Category,
			strconv.Itoa(s.Points), s.Status, s.SubmittedAt.Format("2006-01-02"),
		})
	}
	return ds, nil
}
