// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"

	"cheermate/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Post("/{clubID}/{userID}/approve", h.HandleApprove)
		pr.Post("/{clubID}/{userID}/reject", h.HandleReject)
	})
	return r
}
