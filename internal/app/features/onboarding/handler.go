// internal/app/features/onboarding/handler.go
package onboarding

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/draftcookie"
	"cheermate/internal/app/system/formutil"
	"cheermate/internal/app/system/inputval"
	"cheermate/internal/app/system/normalize"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
)

type Handler struct {
	API    *backend.Client
	Drafts *draftcookie.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(api *backend.Client, drafts *draftcookie.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, Drafts: drafts, ErrLog: errLog, Log: logger}
}

// stepVM is the shared view model of every wizard page.
type stepVM struct {
	formutil.Base
	Step        int
	Total       int
	ProgressPct int
	Segment     string

	// email-password
	Email string

	// name-gender
	Name   string
	Gender string

	// personality steps
	Category Category
	Picked   string
	IsFinal  bool
	SkipURL  string
}

func (h *Handler) newStepVM(r *http.Request, step int, title string) stepVM {
	vm := stepVM{Step: step, Total: totalSteps, ProgressPct: step * 100 / totalSteps, Segment: segmentFor(step)}
	formutil.SetBase(&vm.Base, r, title, "")
	if step > 1 {
		vm.BackURL = "/onboarding/" + segmentFor(step-1)
	} else {
		vm.BackURL = ""
	}
	return vm
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /onboarding and /onboarding/{segment}                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeStart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/onboarding/"+stepSegments[0], http.StatusSeeOther)
}

func (h *Handler) ServeStep(w http.ResponseWriter, r *http.Request) {
	step := stepNumber(chi.URLParam(r, "segment"))
	if step == 0 {
		http.Redirect(w, r, "/onboarding/"+stepSegments[0], http.StatusSeeOther)
		return
	}

	draft := h.Drafts.Load(r)
	h.renderStep(w, r, step, draft, "")
}

func (h *Handler) renderStep(w http.ResponseWriter, r *http.Request, step int, draft *models.OnboardingDraft, errMsg string) {
	switch {
	case step == 1:
		vm := h.newStepVM(r, step, "시작하기")
		vm.Email = draft.Email
		if errMsg != "" {
			vm.SetError(errMsg)
		}
		templates.Render(w, r, "onboarding_email", vm)

	case step == 2:
		vm := h.newStepVM(r, step, "시작하기")
		vm.Name = draft.Name
		vm.Gender = draft.Gender
		if errMsg != "" {
			vm.SetError(errMsg)
		}
		templates.Render(w, r, "onboarding_name", vm)

	default:
		cat, rank := categoryFor(step)
		vm := h.newStepVM(r, step, "성격을 선택해주세요")
		vm.Category = cat
		vm.IsFinal = step == totalSteps
		if !vm.IsFinal {
			vm.SkipURL = "/onboarding/" + segmentFor(step+1)
		}
		if sel, ok := draft.SelectionFor(cat.Code); ok && sel.Rank == rank {
			vm.Picked = sel.OptionLabel
		}
		if errMsg != "" {
			vm.SetError(errMsg)
		}
		templates.Render(w, r, "onboarding_personality", vm)
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /onboarding/{segment}                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleStep(w http.ResponseWriter, r *http.Request) {
	step := stepNumber(chi.URLParam(r, "segment"))
	if step == 0 {
		http.Redirect(w, r, "/onboarding/"+stepSegments[0], http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse onboarding form failed", err, "잘못된 요청입니다.", "/onboarding")
		return
	}

	draft := h.Drafts.Load(r)

	switch {
	case step == 1:
		h.handleCredentials(w, r, draft)
	case step == 2:
		h.handleIdentity(w, r, draft)
	default:
		h.handlePersonality(w, r, step, draft)
	}
}

func (h *Handler) handleCredentials(w http.ResponseWriter, r *http.Request, draft *models.OnboardingDraft) {
	email := normalize.Email(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("password_confirm")

	draft.Email = email
	switch {
	case !inputval.IsValidEmail(email):
		h.renderStep(w, r, 1, draft, "올바른 이메일 형식을 입력해주세요.")
		return
	case !inputval.IsValidPassword(password):
		h.renderStep(w, r, 1, draft, "비밀번호는 6자 이상이어야 합니다.")
		return
	case password != confirm:
		h.renderStep(w, r, 1, draft, "비밀번호가 일치하지 않습니다.")
		return
	}

	draft.Password = password
	h.saveAndAdvance(w, r, draft, 1)
}

func (h *Handler) handleIdentity(w http.ResponseWriter, r *http.Request, draft *models.OnboardingDraft) {
	name := normalize.Name(r.PostFormValue("name"))
	gender := strings.TrimSpace(r.PostFormValue("gender"))

	draft.Name = name
	draft.Gender = gender
	if name == "" || gender == "" {
		h.renderStep(w, r, 2, draft, "이름과 성별을 입력해주세요.")
		return
	}
	if _, ok := normalize.Gender(gender); !ok {
		h.renderStep(w, r, 2, draft, "성별을 선택해주세요.")
		return
	}

	h.saveAndAdvance(w, r, draft, 2)
}

func (h *Handler) handlePersonality(w http.ResponseWriter, r *http.Request, step int, draft *models.OnboardingDraft) {
	cat, rank := categoryFor(step)
	final := step == totalSteps

	if r.PostFormValue("action") != "skip" {
		option := r.PostFormValue("option")
		if !validOption(cat, option) {
			h.renderStep(w, r, step, draft, "옵션을 선택해주세요.")
			return
		}
		draft.SetSelection(models.Selection{CategoryCode: cat.Code, OptionLabel: option, Rank: rank})
	}

	if !final {
		h.saveAndAdvance(w, r, draft, step)
		return
	}

	if err := h.Drafts.Save(w, draft); err != nil {
		h.ErrLog.LogServerError(w, r, "save onboarding draft failed", err, "진행 상태를 저장하지 못했습니다.", "/onboarding")
		return
	}
	h.complete(w, r, draft)
}

func (h *Handler) saveAndAdvance(w http.ResponseWriter, r *http.Request, draft *models.OnboardingDraft, step int) {
	if err := h.Drafts.Save(w, draft); err != nil {
		h.ErrLog.LogServerError(w, r, "save onboarding draft failed", err, "진행 상태를 저장하지 못했습니다.", "/onboarding")
		return
	}
	http.Redirect(w, r, "/onboarding/"+segmentFor(step+1), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Completion: register, auto-login, hand off to the app                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) complete(w http.ResponseWriter, r *http.Request, draft *models.OnboardingDraft) {
	if err := draft.Validate(); err != nil {
		h.renderStep(w, r, totalSteps, draft, completionMessage(err))
		return
	}

	wireGender, ok := normalize.Gender(draft.Gender)
	if !ok {
		h.renderStep(w, r, totalSteps, draft, "이름과 성별을 입력해주세요.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "register")
	defer cancel()

	err := h.API.Register(ctx, backend.RegisterInput{
		Email:      draft.Email,
		Password:   draft.Password,
		Name:       draft.Name,
		Nickname:   nil,
		AvatarURL:  draft.AvatarURL,
		Gender:     wireGender,
		Selections: draft.Selections,
	})
	if err != nil {
		msg := backend.UserMessage(err, "회원가입 중 오류가 발생했습니다.")
		if isDuplicateEmail(msg) {
			// The account already exists; the email step is where that gets
			// fixed.
			h.renderStep(w, r, 1, draft, msg)
			return
		}
		h.Log.Warn("registration failed", zap.Error(err))
		h.renderStep(w, r, totalSteps, draft, msg)
		return
	}

	// Registration succeeded: the draft is spent whatever happens next.
	h.Drafts.Clear(w)

	out, err := auth.LoginUpstream(ctx, h.API, draft.Email, draft.Password, auth.LoginOptions{SkipUserProfile: true}, h.Log)
	if err != nil {
		// The account exists; the member signs in manually once the backend
		// settles. Not a registration failure, so no message.
		h.Log.Warn("auto-login after registration failed", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := auth.SignIn(w, r, out.Cookie); err != nil {
		h.Log.Error("persist session after registration", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func completionMessage(err error) string {
	switch err {
	case models.ErrDraftCredentials:
		return "이메일과 비밀번호를 입력해주세요."
	case models.ErrDraftIdentity:
		return "이름과 성별을 입력해주세요."
	case models.ErrDraftSelections:
		return "모든 카테고리를 선택해주세요."
	}
	return "회원가입 중 오류가 발생했습니다."
}

func validOption(cat Category, option string) bool {
	for _, o := range cat.Options {
		if o == option {
			return true
		}
	}
	return false
}

// isDuplicateEmail pattern-matches the backend's message; there is no
// structured error code for this case.
func isDuplicateEmail(msg string) bool {
	return strings.Contains(msg, "이메일") && (strings.Contains(msg, "이미") || strings.Contains(msg, "중복"))
}
