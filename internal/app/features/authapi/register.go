// internal/app/features/authapi/register.go
package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Branch   string `json:"branch"`
	Year     string `json:"year"`
}

// HandleRegister self-registers a member and logs them in. A member
// record that an admin created without a password can be claimed by
// registering with its email.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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
	if len(req.Password) < minPasswordLen {
		httpjson.BadRequest(w, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password", zap.Error(err))
		httpjson.Internal(w, "registration failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.Members.Create(ctx, models.Member{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Branch:       strings.TrimSpace(req.Branch),
		Year:         strings.TrimSpace(req.Year),
	})
	if err == memberstore.ErrDuplicateEmail {
		member, err = h.claimExisting(ctx, req.Email, string(hash))
		if err != nil {
			if err == memberstore.ErrDuplicateEmail {
				httpjson.BadRequest(w, "a member with this email already exists")
				return
			}
			h.Log.Error("claim member", zap.Error(err))
			httpjson.Internal(w, "registration failed")
			return
		}
	} else if err != nil {
		h.Log.Error("register member", zap.Error(err))
		httpjson.Internal(w, "registration failed")
		return
	}

	u := &auth.SessionUser{
		ID:    member.ID.Hex(),
		Name:  member.Name,
		Email: member.Email,
		Role:  member.Role,
	}
	if err := h.Sessions.SignIn(w, r, u); err != nil {
		h.Log.Error("establish session", zap.Error(err))
		httpjson.Internal(w, "registration failed")
		return
	}

	httpjson.Created(w, sessionResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		IsAdmin: u.IsAdmin(),
	})
}

// claimExisting sets a password on a password-less member record.
// Records that already have a password stay owned by their holder.
func (h *Handler) claimExisting(ctx context.Context, email, hash string) (models.Member, error) {
	existing, err := h.Members.GetByEmail(ctx, email)
	if err != nil {
		return models.Member{}, err
	}
	if existing.PasswordHash != "" {
		return models.Member{}, memberstore.ErrDuplicateEmail
	}
	if err := h.Members.SetPassword(ctx, existing.ID, hash); err != nil {
		return models.Member{}, err
	}
	return *existing, nil
}
