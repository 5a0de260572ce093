// internal/app/features/submissions/routes.go
package submissions

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all submission routes under the path where the caller
// mounts it. Typically: r.Mount("/submissions", submissions.Routes(handler))
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

		ar.Patch("/{id}", h.HandleReview)
	})

	return r
}
