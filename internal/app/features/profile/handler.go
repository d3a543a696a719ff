// internal/app/features/profile/handler.go
package profile

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/formutil"
	"cheermate/internal/app/system/htmlsanitize"
	"cheermate/internal/app/system/normalize"
	"cheermate/internal/app/system/timefmt"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/app/system/viewdata"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
)

// Handler owns the mypage handlers: the tabbed profile view, the field
// editors, and account deletion.
type Handler struct {
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
	now    func() time.Time
}

func NewHandler(errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{ErrLog: errLog, Log: logger, now: time.Now}
}

// message is one praise card on the received or sent tab.
type message struct {
	Emoji   string
	Prompt  string
	Name    string
	TimeAgo string
}

type pageVM struct {
	viewdata.BaseVM
	User     *models.User
	Tab      string
	Messages []message
	Badges   []models.Badge
	Failed   bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /profile?tab=received|sent|badges                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	v, _ := auth.CurrentViewer(r)

	tab := r.URL.Query().Get("tab")
	switch tab {
	case "sent", "badges":
	default:
		tab = "received"
	}

	data := pageVM{
		BaseVM: viewdata.NewBaseVM(r, "마이", "/"),
		User:   v.User,
		Tab:    tab,
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "profile tab")
	defer cancel()

	switch tab {
	case "badges":
		catalog, err := v.API.Badges(ctx)
		if err != nil {
			h.Log.Warn("fetch badge catalog failed", zap.Error(err))
			data.Failed = true
			break
		}
		mine, err := v.API.MyBadges(ctx)
		if err != nil {
			h.Log.Warn("fetch earned badges failed", zap.Error(err))
			data.Failed = true
			break
		}
		data.Badges = markEarned(catalog, mine)
	case "sent":
		msgs, err := v.API.Sent(ctx)
		if err != nil {
			h.Log.Warn("fetch sent messages failed", zap.Error(err))
			data.Failed = true
		} else {
			data.Messages = h.toCards(msgs, true)
		}
	default:
		msgs, err := v.API.Received(ctx)
		if err != nil {
			h.Log.Warn("fetch received messages failed", zap.Error(err))
			data.Failed = true
		} else {
			data.Messages = h.toCards(msgs, false)
		}
	}

	templates.Render(w, r, "profile", data)
}

// toCards maps backend messages to cards. A received anonymous compliment
// hides the sender; sent messages always carry the counterparty's name.
func (h *Handler) toCards(msgs []models.PraiseMessage, sent bool) []message {
	now := h.now()
	cards := make([]message, 0, len(msgs))
	for _, m := range msgs {
		name := m.From
		if !sent && m.Anonymous {
			name = "익명"
		}
		cards = append(cards, message{
			Emoji:   m.Emoji,
			Prompt:  m.Prompt,
			Name:    name,
			TimeAgo: timefmt.TimeAgo(m.CreatedAt, now),
		})
	}
	return cards
}

// markEarned flags the catalog rows the member has earned; the rest render
// locked.
func markEarned(catalog, mine []models.Badge) []models.Badge {
	earned := make(map[int64]bool, len(mine))
	for _, b := range mine {
		earned[b.ID] = true
	}
	for i := range catalog {
		if earned[catalog[i].ID] {
			catalog[i].Earned = true
		}
	}
	return catalog
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /profile/edit – read-only field list with per-field edit links          |
*─────────────────────────────────────────────────────────────────────────────*/

type editVM struct {
	viewdata.BaseVM
	User        *models.User
	GenderLabel string
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	v, _ := auth.CurrentViewer(r)

	templates.Render(w, r, "profile_edit", editVM{
		BaseVM:      viewdata.NewBaseVM(r, "프로필 편집", "/profile"),
		User:        v.User,
		GenderLabel: normalize.GenderLabel(v.User.Gender),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET+POST /profile/edit/{field} – single-field editor                        |
*─────────────────────────────────────────────────────────────────────────────*/

// editableField describes one field the update endpoint accepts. Gender and
// id stay out of the patch no matter what the form posts.
type editableField struct {
	Key      string
	Title    string
	Required bool
	current  func(u *models.User) string
	apply    func(p *backend.ProfileUpdate, val string)
}

var editableFields = []editableField{
	{
		Key: "name", Title: "이름", Required: true,
		current: func(u *models.User) string { return u.Name },
		apply:   func(p *backend.ProfileUpdate, val string) { p.Name = &val },
	},
	{
		Key: "nickname", Title: "닉네임",
		current: func(u *models.User) string { return u.Nickname },
		apply:   func(p *backend.ProfileUpdate, val string) { p.Nickname = &val },
	},
	{
		Key: "avatar", Title: "프로필 이미지",
		current: func(u *models.User) string { return u.ProfileImage },
		apply:   func(p *backend.ProfileUpdate, val string) { p.AvatarURL = &val },
	},
}

func fieldFor(key string) *editableField {
	for i := range editableFields {
		if editableFields[i].Key == key {
			return &editableFields[i]
		}
	}
	return nil
}

type fieldVM struct {
	formutil.Base
	Field string
	Label string
	Value string
}

func (h *Handler) ServeFieldEdit(w http.ResponseWriter, r *http.Request) {
	v, _ := auth.CurrentViewer(r)

	field := fieldFor(chi.URLParam(r, "field"))
	if field == nil {
		uierrors.RenderNotFound(w, r)
		return
	}
	h.renderField(w, r, field, field.current(v.User), "")
}

func (h *Handler) renderField(w http.ResponseWriter, r *http.Request, field *editableField, value, errMsg string) {
	data := fieldVM{Field: field.Key, Label: field.Title, Value: value}
	formutil.SetBase(&data.Base, r, field.Title, "/profile/edit")
	if errMsg != "" {
		data.SetError(errMsg)
	}
	templates.Render(w, r, "profile_field_edit", data)
}

func (h *Handler) HandleFieldEdit(w http.ResponseWriter, r *http.Request) {
	v, _ := auth.CurrentViewer(r)

	field := fieldFor(chi.URLParam(r, "field"))
	if field == nil {
		uierrors.RenderNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse profile field form failed", err, "잘못된 요청입니다.", "/profile/edit")
		return
	}
	value := htmlsanitize.Strip(strings.TrimSpace(r.PostFormValue("value")))
	if field.Required && value == "" {
		h.renderField(w, r, field, value, field.Title+"을(를) 입력해주세요.")
		return
	}

	var patch backend.ProfileUpdate
	field.apply(&patch, value)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "profile update")
	defer cancel()

	if _, err := v.API.UpdateProfile(ctx, patch); err != nil {
		h.Log.Warn("profile update failed",
			zap.String("field", field.Key), zap.Error(err))
		msg := backend.UserMessage(err, "업데이트에 실패했습니다. 다시 시도해주세요.")
		h.renderField(w, r, field, value, msg)
		return
	}

	http.Redirect(w, r, "/profile/edit", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /profile/delete – account deletion from the settings section           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	v, _ := auth.CurrentViewer(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "account deletion")
	defer cancel()

	if err := v.API.DeleteAccount(ctx); err != nil {
		h.Log.Warn("account deletion failed",
			zap.Int64("user_id", v.User.ID), zap.Error(err))
		uierrors.RenderError(w, r,
			"회원탈퇴 중 오류가 발생했습니다. 다시 시도해주세요.", "/profile")
		return
	}

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("session clear after deletion failed", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
