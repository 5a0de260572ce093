// internal/app/features/winners/routes.go
package winners

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the winner snapshot routes.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)

		ar.Post("/", h.HandleFreeze)
	})

	return r
}
