// internal/app/features/clubs/handler.go
package clubs

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/formutil"
	"cheermate/internal/app/system/htmlsanitize"
	"cheermate/internal/app/system/normalize"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/app/system/viewdata"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
)

// maxSearchResults caps the visible hits; the search box narrows the rest.
const maxSearchResults = 4

type Handler struct {
	API    *backend.Client
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

func clubID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "clubID"), 10, 64)
	return id, err == nil && id > 0
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /clubs/search – search page and HTMX results                            |
*─────────────────────────────────────────────────────────────────────────────*/

type searchVM struct {
	viewdata.BaseVM
	Query   string
	Results []models.Club
	Failed  bool
}

func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	data := searchVM{
		BaseVM: viewdata.NewBaseVM(r, "동아리를 선택해 주세요", "/"),
		Query:  normalize.QueryParam(r.URL.Query().Get("q")),
	}
	if data.Query != "" {
		data.Results, data.Failed = h.search(r, data.Query)
	}
	templates.Render(w, r, "club_search", data)
}

// ServeSearchResults renders only the result list; the search input targets
// it over HTMX with a 300 ms debounce.
func (h *Handler) ServeSearchResults(w http.ResponseWriter, r *http.Request) {
	data := searchVM{Query: normalize.QueryParam(r.URL.Query().Get("q"))}
	if data.Query != "" {
		data.Results, data.Failed = h.search(r, data.Query)
	}
	templates.Render(w, r, "club_search_results", data)
}

func (h *Handler) search(r *http.Request, query string) ([]models.Club, bool) {
	v, ok := auth.CurrentViewer(r)
	if !ok {
		return nil, true
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "club search")
	defer cancel()

	clubs, err := v.API.SearchClubs(ctx, query)
	if err != nil {
		h.Log.Warn("club search failed", zap.String("query", query), zap.Error(err))
		return nil, true
	}
	if len(clubs) > maxSearchResults {
		clubs = clubs[:maxSearchResults]
	}
	return clubs, false
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /clubs/{clubID} – detail with active members                            |
*─────────────────────────────────────────────────────────────────────────────*/

type detailVM struct {
	viewdata.BaseVM
	Club        models.Club
	Description template.HTML
	MemberCount int
	Members     []models.ClubMember
	IsMember    bool
}

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(r)
	if !ok {
		uierrors.RenderNotFound(w, r)
		return
	}
	v, _ := auth.CurrentViewer(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "club detail")
	defer cancel()

	club, err := v.API.Club(ctx, id)
	if err != nil {
		if backend.IsNotFound(err) {
			uierrors.RenderError(w, r, "동아리를 찾을 수 없습니다.", "/clubs/search")
			return
		}
		h.ErrLog.LogServerError(w, r, "fetch club failed", err, "동아리 정보를 불러올 수 없습니다.", "/clubs/search")
		return
	}

	data := detailVM{
		BaseVM:      viewdata.NewBaseVM(r, club.Name, "/clubs/search"),
		Club:        *club,
		Description: htmlsanitize.PrepareForDisplay(club.Description),
		MemberCount: club.ActiveMemberCount,
		IsMember:    isMemberOf(v.User, id),
	}

	members, err := v.API.Members(ctx, id, true)
	if err != nil {
		h.Log.Warn("fetch club members failed", zap.Int64("club_id", id), zap.Error(err))
	} else {
		data.Members = members.Members
		if members.Count > 0 {
			data.MemberCount = members.Count
		}
	}

	templates.Render(w, r, "club_detail", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /clubs/{clubID}/join                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type joinVM struct {
	viewdata.BaseVM
	Club       models.Club
	IsMember   bool
	JoinStatus string
	Error      string
}

func (h *Handler) ServeJoin(w http.ResponseWriter, r *http.Request) {
	h.renderJoin(w, r, "", "")
}

func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := clubID(r)
	if !ok {
		uierrors.RenderNotFound(w, r)
		return
	}
	v, _ := auth.CurrentViewer(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "club join")
	defer cancel()

	req, err := v.API.JoinClub(ctx, id)
	if err != nil {
		msg := backend.UserMessage(err, "멤버 요청에 실패했습니다. 잠시 후 다시 시도해주세요.")
		h.Log.Warn("join club failed", zap.Int64("club_id", id), zap.Error(err))
		h.renderJoin(w, r, "", msg)
		return
	}

	// The status is rendered as returned; the membership list itself is only
	// refreshed on the next profile load.
	h.renderJoin(w, r, req.RequestStatus, "")
}

func (h *Handler) renderJoin(w http.ResponseWriter, r *http.Request, status, errMsg string) {
	id, ok := clubID(r)
	if !ok {
		uierrors.RenderNotFound(w, r)
		return
	}
	v, _ := auth.CurrentViewer(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "club join page")
	defer cancel()

	club, err := v.API.Club(ctx, id)
	if err != nil {
		uierrors.RenderError(w, r, "동아리를 찾을 수 없습니다.", "/clubs/search")
		return
	}

	data := joinVM{
		BaseVM:     viewdata.NewBaseVM(r, club.Name, "/clubs/search"),
		Club:       *club,
		IsMember:   isMemberOf(v.User, id),
		JoinStatus: status,
		Error:      errMsg,
	}
	templates.Render(w, r, "club_join", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /clubs/create                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

type createVM struct {
	formutil.Base
	Name        string
	Description string
}

func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	data := createVM{}
	formutil.SetBase(&data.Base, r, "동아리 생성", "/clubs/search")
	templates.Render(w, r, "club_create", data)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse club create form failed", err, "잘못된 요청입니다.", "/clubs/create")
		return
	}
	v, _ := auth.CurrentViewer(r)

	data := createVM{
		Name:        normalize.Name(r.PostFormValue("name")),
		Description: htmlsanitize.Sanitize(r.PostFormValue("description")),
	}
	formutil.SetBase(&data.Base, r, "동아리 생성", "/clubs/search")

	if data.Name == "" || data.Description == "" {
		data.SetError("동아리 이름과 설명을 입력해주세요.")
		templates.Render(w, r, "club_create", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "club create")
	defer cancel()

	club, err := v.API.CreateClub(ctx, backend.CreateClubInput{
		Name:        data.Name,
		Description: data.Description,
	})
	if err != nil {
		data.SetError(backend.UserMessage(err, "동아리 생성에 실패했습니다. 다시 시도해주세요."))
		h.Log.Warn("club create failed", zap.Error(err))
		templates.Render(w, r, "club_create", data)
		return
	}

	http.Redirect(w, r, "/clubs/"+strconv.FormatInt(club.ID, 10), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /clubs/select – active club switcher                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse club select form failed", err, "잘못된 요청입니다.", "/")
		return
	}
	v, _ := auth.CurrentViewer(r)

	wanted := r.PostFormValue("club_id")
	id, err := strconv.ParseInt(wanted, 10, 64)
	if err != nil || !isMemberOf(v.User, id) {
		uierrors.RenderError(w, r, "가입한 동아리만 선택할 수 있습니다.", "/")
		return
	}

	if err := auth.SelectClub(w, r, wanted); err != nil {
		h.ErrLog.LogServerError(w, r, "persist club selection failed", err, "동아리 선택에 실패했습니다.", "/")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isMemberOf(u *models.User, clubID int64) bool {
	if u == nil {
		return false
	}
	for _, c := range u.Clubs {
		if c.ID == clubID {
			return true
		}
	}
	return false
}
