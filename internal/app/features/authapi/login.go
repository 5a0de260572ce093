// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/httpjson"
	"github.com/dalemusser/chapterhub/internal/app/system/limits"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// HandleLogin checks the member's password and establishes a session.
// Wrong email and wrong password produce the same 401 message.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.BadRequest(w, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	member, err := h.Members.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == memberstore.ErrNotFound {
			httpjson.Unauthorized(w, "invalid email or password")
			return
		}
		h.Log.Error("login lookup", zap.Error(err))
		httpjson.Internal(w, "login failed")
		return
	}

	if member.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)) != nil {
		httpjson.Unauthorized(w, "invalid email or password")
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
		httpjson.Internal(w, "login failed")
		return
	}

	httpjson.OK(w, sessionResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		IsAdmin: u.IsAdmin(),
	})
}

// HandleAdmin elevates the current session to admin when the caller
// presents the configured admin password. Elevation requires a
// signed-in member so the promoted session keeps a usable identity
// for the review and audit trails.
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); !ok || u.ID == "" {
		httpjson.Unauthorized(w, "sign in before requesting admin access")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.BadRequest(w, "invalid request body")
		return
	}

	if h.AdminPassword == "" {
		h.Log.Warn("admin elevation attempted with no admin password configured")
		httpjson.Unauthorized(w, "admin access is not enabled")
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.AdminPassword)) != 1 {
		httpjson.Unauthorized(w, "invalid admin password")
		return
	}

	if err := h.Sessions.PromoteToAdmin(w, r); err != nil {
		h.Log.Error("promote session", zap.Error(err))
		httpjson.Internal(w, "admin elevation failed")
		return
	}

	httpjson.OKMessage(w, "admin access granted")
}

// HandleLogout clears the session cookie.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("clear session", zap.Error(err))
	}
	httpjson.OKMessage(w, "logged out")
}
