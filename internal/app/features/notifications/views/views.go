// internal/app/features/notifications/views/views.go
package notifications

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "notifications",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
