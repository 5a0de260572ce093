// internal/app/features/reports/routes.go
package reports

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the report workflow routes.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)

		ar.Patch("/{id}", h.HandleUpdate)
	})

	return r
}
