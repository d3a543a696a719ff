// internal/app/features/praise/routes.go
package praise

import (
	"github.com/go-chi/chi/v5"

	"cheermate/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireClubMember)

		pr.Get("/", h.ServeStart)
		pr.Get("/{index}", h.ServeStep)
		pr.Post("/{index}", h.HandleStep)
	})
	return r
}
