// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"cheermate/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServePage)
		pr.Get("/edit", h.ServeEdit)
		pr.Get("/edit/{field}", h.ServeFieldEdit)
		pr.Post("/edit/{field}", h.HandleFieldEdit)
		pr.Post("/delete", h.HandleDelete)
	})
	return r
}
