// internal/app/features/clubs/routes.go
package clubs

import (
	"github.com/go-chi/chi/v5"

	"cheermate/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/search", h.ServeSearch)
		pr.Get("/search/results", h.ServeSearchResults)
		pr.Get("/create", h.ServeCreate)
		pr.Post("/create", h.HandleCreate)
		pr.Post("/select", h.HandleSelect)
		pr.Get("/{clubID}", h.ServeDetail)
		pr.Get("/{clubID}/join", h.ServeJoin)
		pr.Post("/{clubID}/join", h.HandleJoin)
	})
	return r
}
