package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/clubctx"
	"cheermate/internal/app/system/viewdata"
)

// Handler serves the signed-in landing page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
		University string
		HasClub    bool
	}{
		BaseVM: viewdata.NewBaseVM(r, "홈", ""),
	}

	if u, ok := auth.CurrentUser(r); ok {
		if c := clubctx.Active(u); c != nil {
			data.University = c.University
			data.HasClub = true
		}
	}

	templates.Render(w, r, "home", data)
}
