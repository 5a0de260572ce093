// internal/app/features/members/create.go
package members

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Branch   string `json:"branch"`
	Year     string `json:"year"`
	JoinYear int    `json:"joinYear"`
	Bio      string `json:"bio"`
}

// HandleCreate adds a member directly (admin path; self-registration
// goes through the auth feature).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpjson.BadRequest(w, "name is required")
		return
	}
	if !validate.SimpleEmailValid(req.Email) {
		httpjson.BadRequest(w, "a valid email is required")
		return
	}

	m := models.Member{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Branch:   strings.TrimSpace(req.Branch),
		Year:     strings.TrimSpace(req.Year),
		JoinYear: req.JoinYear,
		Bio:      htmlsanitize.Sanitize(req.Bio),
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.Log.Error("hash password", zap.Error(err))
			httpjson.Internal(w, "failed to create member")
			return
		}
		m.PasswordHash = string(hash)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Members.Create(ctx, m)
	if err != nil {
		if err == memberstore.ErrDuplicateEmail {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.Log.Error("create member", zap.Error(err))
		httpjson.Internal(w, "failed to create member")
		return
	}

	httpjson.Created(w, created)
}
