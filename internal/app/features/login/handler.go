// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/formutil"
	"cheermate/internal/app/system/inputval"
	"cheermate/internal/app/system/normalize"
	"cheermate/internal/app/system/ratelimit"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/backend"
)

type Handler struct {
	API     *backend.Client
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
	Limiter *ratelimit.LoginLimiter
}

func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger, Limiter: ratelimit.NewLoginLimiter()}
}

type loginForm struct {
	formutil.Base
	Email  string
	Return string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login – sign-in form                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	// Already signed in: nothing to do here.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := loginForm{Return: safeReturn(r.URL.Query().Get("return"))}
	formutil.SetBase(&data.Base, r, "로그인", "/")
	templates.Render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login – authenticate against the praise service                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "잘못된 요청입니다.", "/login")
		return
	}

	email := normalize.Email(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	ret := safeReturn(r.PostFormValue("return"))

	data := loginForm{Email: email, Return: ret}
	formutil.SetBase(&data.Base, r, "로그인", "/")

	if !inputval.IsValidEmail(email) {
		data.SetError("올바른 이메일 주소를 입력해주세요.")
		templates.Render(w, r, "login", data)
		return
	}
	if password == "" {
		data.SetError("비밀번호를 입력해주세요.")
		templates.Render(w, r, "login", data)
		return
	}

	if ok, reason := h.Limiter.Check(r, email); !ok {
		h.Log.Warn("login rate limited",
			zap.String("ip", ratelimit.ClientIP(r)))
		data.SetError(reason)
		templates.Render(w, r, "login", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "login")
	defer cancel()

	out, err := auth.LoginUpstream(ctx, h.API, email, password, auth.LoginOptions{}, h.Log)
	if err != nil {
		switch {
		case backend.IsValidation(err) || backend.IsUnauthenticated(err):
			data.SetError(backend.UserMessage(err, "이메일 또는 비밀번호가 올바르지 않습니다."))
		default:
			h.Log.Warn("login against praise service failed", zap.Error(err))
			data.SetError("로그인에 실패했습니다. 잠시 후 다시 시도해주세요.")
		}
		templates.Render(w, r, "login", data)
		return
	}

	h.Limiter.ResetEmail(email)

	if err := auth.SignIn(w, r, out.Cookie); err != nil {
		h.ErrLog.LogServerError(w, r, "persist session failed", err, "로그인에 실패했습니다.", "/login")
		return
	}

	dest := ret
	if dest == "" {
		dest = "/"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// safeReturn keeps redirects on-site: a single leading slash, nothing else.
func safeReturn(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return ""
}
