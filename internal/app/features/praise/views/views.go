// internal/app/features/praise/views/views.go
package praise

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "praise",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
