// internal/app/features/leaderboard/routes.go
package leaderboard

import "github.com/go-chi/chi/v5"

// Routes mounts the leaderboard. The standings are public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	return r
}
