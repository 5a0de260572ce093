// internal/app/features/progress/routes.go
package progress

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the progress routes. Listing is public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)

		ar.Post("/", h.HandleCreate)
	})

	return r
}
