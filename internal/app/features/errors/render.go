// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"cheermate/internal/app/system/viewdata"
)

// RenderError shows the shared error page with a user-facing message.
// If backURL is empty, it defaults to home.
func RenderError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "문제가 발생했어요", backURL),
		Message: msg,
	}
	templates.Render(w, r, "error_page", data)
}

// RenderNotFound shows the shared not-found page.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "찾을 수 없어요", "/"),
		Message: "요청하신 페이지를 찾을 수 없습니다.",
	}
	templates.Render(w, r, "error_notfound", data)
}
