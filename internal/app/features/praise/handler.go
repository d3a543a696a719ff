// internal/app/features/praise/handler.go
package praise

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/clubctx"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/app/system/viewdata"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
)

type Handler struct {
	API    *backend.Client
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

type stepVM struct {
	viewdata.BaseVM
	Index    int
	Total    int
	Category models.ComplimentCategory
	Error    string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /praise and /praise/{index}                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeStart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/praise/0", http.StatusSeeOther)
}

func (h *Handler) ServeStep(w http.ResponseWriter, r *http.Request) {
	index, ok := stepIndex(r)
	if !ok {
		http.Redirect(w, r, "/praise/0", http.StatusSeeOther)
		return
	}
	h.renderStep(w, r, index, "")
}

// renderStep refetches the category list on every page entry; the backend
// shuffles candidates, so a stale list would misattribute a send.
func (h *Handler) renderStep(w http.ResponseWriter, r *http.Request, index int, errMsg string) {
	v, _ := auth.CurrentViewer(r)
	cats, err := h.fetchCategories(r, v)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch compliment categories failed", err, "칭찬 목록을 불러올 수 없습니다.", "/")
		return
	}
	if index >= len(cats) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := stepVM{
		BaseVM:   viewdata.NewBaseVM(r, "칭찬하고 싶은 사람을 선택해 주세요", "/"),
		Index:    index,
		Total:    len(cats),
		Category: cats[index],
		Error:    errMsg,
	}
	templates.Render(w, r, "praise_step", data)
}

func (h *Handler) fetchCategories(r *http.Request, v *auth.Viewer) ([]models.ComplimentCategory, error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "compliment categories")
	defer cancel()
	return v.API.Categories(ctx, clubctx.ActiveID(v.User), 0)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /praise/{index} – send or skip                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleStep(w http.ResponseWriter, r *http.Request) {
	index, ok := stepIndex(r)
	if !ok {
		http.Redirect(w, r, "/praise/0", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse praise form failed", err, "잘못된 요청입니다.", "/praise")
		return
	}

	// Skip never talks to the backend.
	if r.PostFormValue("action") == "skip" {
		h.advance(w, r, index)
		return
	}

	complimentID, err1 := strconv.ParseInt(r.PostFormValue("compliment_id"), 10, 64)
	userID, err2 := strconv.ParseInt(r.PostFormValue("user_id"), 10, 64)
	if err1 != nil || err2 != nil {
		h.renderStep(w, r, index, "칭찬할 멤버를 선택해주세요.")
		return
	}
	anonymous := r.PostFormValue("anonymous") != ""

	v, _ := auth.CurrentViewer(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "send compliment")
	defer cancel()

	if err := v.API.SendCompliment(ctx, complimentID, userID, anonymous); err != nil {
		// Stay on the same category; only a confirmed send advances.
		h.Log.Warn("send compliment failed",
			zap.Int64("compliment_id", complimentID), zap.Int64("user_id", userID), zap.Error(err))
		h.renderStep(w, r, index, backend.UserMessage(err, "칭찬을 보내지 못했습니다. 다시 시도해주세요."))
		return
	}

	h.advance(w, r, index)
}

// advance moves to the next category; renderStep redirects home once the
// index runs past the list.
func (h *Handler) advance(w http.ResponseWriter, r *http.Request, index int) {
	http.Redirect(w, r, "/praise/"+strconv.Itoa(index+1), http.StatusSeeOther)
}

func stepIndex(r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	return index, err == nil && index >= 0
}
