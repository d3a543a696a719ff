// internal/app/features/ranking/views/views.go
package ranking

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "ranking",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
