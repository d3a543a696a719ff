// internal/app/features/notifications/handler.go
package notifications

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/timefmt"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/app/system/viewdata"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
)

type Handler struct {
	API     *backend.Client
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
	pending *inflight
	now     func() time.Time
}

func NewHandler(api *backend.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger, pending: newInflight(), now: time.Now}
}

// row is one approval request waiting on the viewer.
type row struct {
	ClubID   int64
	ClubName string
	UserID   int64
	UserName string
	TimeAgo  string
}

type listVM struct {
	viewdata.BaseVM
	Rows   []row
	Failed bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /notifications – pending requests across the viewer's clubs             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	v, _ := auth.CurrentViewer(r)

	data := listVM{BaseVM: viewdata.NewBaseVM(r, "알림", "/")}
	rows, failed := h.collect(r, v)
	data.Rows = rows
	data.Failed = failed

	templates.Render(w, r, "notifications", data)
}

func (h *Handler) collect(r *http.Request, v *auth.Viewer) ([]row, bool) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "pending members")
	defer cancel()

	var rows []row
	failed := false
	for _, club := range v.User.Clubs {
		members, err := v.API.Members(ctx, club.ID, false)
		if err != nil {
			h.Log.Warn("fetch pending members failed",
				zap.Int64("club_id", club.ID), zap.Error(err))
			failed = true
			continue
		}
		for _, m := range members.Members {
			rows = append(rows, row{
				ClubID:   club.ID,
				ClubName: club.Name,
				UserID:   m.ID,
				UserName: m.Name,
				TimeAgo:  timefmt.TimeAgo(m.RequestedAt, h.now()),
			})
		}
	}
	return rows, failed
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /notifications/{clubID}/{userID}/approve | /reject                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.RequestApproved)
}

func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.RequestRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, outcome string) {
	clubID, err1 := strconv.ParseInt(chi.URLParam(r, "clubID"), 10, 64)
	userID, err2 := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err1 != nil || err2 != nil {
		uierrors.RenderNotFound(w, r)
		return
	}
	v, _ := auth.CurrentViewer(r)

	key := decisionKey(clubID, userID)
	if !h.pending.begin(key) {
		// A decision for this pair is already running; drop the duplicate.
		http.Redirect(w, r, "/notifications", http.StatusSeeOther)
		return
	}
	defer h.pending.end(key)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "member decision")
	defer cancel()

	var req *models.JoinRequest
	var err error
	if outcome == models.RequestApproved {
		req, err = v.API.ApproveMember(ctx, clubID, userID)
	} else {
		req, err = v.API.RejectMember(ctx, clubID, userID)
	}
	if err != nil {
		verb := "승인"
		if outcome == models.RequestRejected {
			verb = "거절"
		}
		msg := "멤버 " + verb + "에 실패했습니다: " + backend.UserMessage(err, "알 수 없는 오류")
		h.Log.Warn("member decision failed",
			zap.Int64("club_id", clubID), zap.Int64("user_id", userID),
			zap.String("outcome", outcome), zap.Error(err))
		uierrors.RenderError(w, r, msg, "/notifications")
		return
	}

	if req.RequestStatus != outcome {
		h.Log.Warn("member decision returned unexpected status",
			zap.String("got", req.RequestStatus), zap.String("want", outcome))
	}

	// The list is refetched on the redirect rather than edited in place.
	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}
