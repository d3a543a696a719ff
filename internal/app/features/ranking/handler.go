// internal/app/features/ranking/handler.go
package ranking

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/clubctx"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/app/system/viewdata"
	"cheermate/internal/domain/models"
)

// listLimit caps every ranking list on the page.
const listLimit = 10

type Handler struct {
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{ErrLog: errLog, Log: logger}
}

type pageVM struct {
	viewdata.BaseVM
	Board        []models.RankingEntry
	Kings        []models.RankingEntry
	Podium       []models.RankingEntry
	ClubRankings []models.RankingEntry
	ClubSent     []models.RankingEntry
	Failed       bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /ranking                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	v, _ := auth.CurrentViewer(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "rankings")
	defer cancel()

	data := pageVM{BaseVM: viewdata.NewBaseVM(r, "랭킹", "/")}

	board, err := v.API.Ranking(ctx)
	if err != nil {
		h.Log.Warn("fetch main ranking board failed", zap.Error(err))
		data.Failed = true
	} else {
		data.Board = board
	}

	kings, err := v.API.GlobalSent(ctx, listLimit)
	if err != nil {
		h.Log.Warn("fetch global ranking failed", zap.Error(err))
		data.Failed = true
	} else {
		data.Kings = kings
		data.Podium = PodiumOrder(kings)
	}

	clubs, err := v.API.ClubsSent(ctx, listLimit)
	if err != nil {
		h.Log.Warn("fetch club rankings failed", zap.Error(err))
		data.Failed = true
	} else {
		data.ClubRankings = clubs
	}

	if clubID := clubctx.ActiveID(v.User); clubID != 0 {
		sent, err := v.API.ClubSent(ctx, clubID, listLimit)
		if err != nil {
			h.Log.Warn("fetch active club ranking failed",
				zap.Int64("club_id", clubID), zap.Error(err))
		} else {
			data.ClubSent = sent
		}
	}

	templates.Render(w, r, "ranking", data)
}

// PodiumOrder arranges the top three as 2-1-3 so first place sits in the
// middle of the podium.
func PodiumOrder(entries []models.RankingEntry) []models.RankingEntry {
	if len(entries) < 3 {
		return nil
	}
	var first, second, third *models.RankingEntry
	for i := range entries[:3] {
		switch entries[i].Rank {
		case 1:
			first = &entries[i]
		case 2:
			second = &entries[i]
		case 3:
			third = &entries[i]
		}
	}
	if first == nil || second == nil || third == nil {
		return nil
	}
	return []models.RankingEntry{*second, *first, *third}
}
