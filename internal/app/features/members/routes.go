// internal/app/features/members/routes.go
package members

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all member routes under the path where the caller mounts it.
// Typically: r.Mount("/members", members.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Patch("/{id}", h.HandleUpdate)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)

		ar.Post("/", h.HandleCreate)
		ar.Delete("/{id}", h.HandleDelete)
		ar.Post("/{id}/achievement", h.HandleAwardAchievement)
	})

	return r
}
