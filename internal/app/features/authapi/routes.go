// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/dalemusser/chapterhub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the session endpoints. The rate limiter guards the
// credential-bearing endpoints; logout is unguarded.
// Typically: r.Mount("/auth", authapi.Routes(handler, limiter))
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(lr chi.Router) {
		lr.Use(limiter.Middleware)

		lr.Post("/login", h.HandleLogin)
		lr.Post("/register", h.HandleRegister)
		lr.Post("/admin", h.HandleAdmin)
	})

	r.Post("/logout", h.HandleLogout)

	return r
}
