// internal/app/features/documents/routes.go
package documents

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the document archive routes. Listing is public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)

		ar.Post("/", h.HandleCreate)
		ar.Post("/upload", h.HandleUpload)
		ar.Delete("/{id}", h.HandleDelete)
	})

	return r
}
