// internal/backend/rankings.go
package backend

import (
	"context"
	"fmt"
	"net/http"

	"cheermate/internal/domain/models"
)

type rankingDTO struct {
	Rank         int    `json:"rank"`
	UserID       *int64 `json:"userId"`
	ID           *int64 `json:"id"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatarUrl"`
	ProfileImage string `json:"profileImage"`
	Count        int    `json:"count"`
}

func (d *rankingDTO) toEntry() models.RankingEntry {
	e := models.RankingEntry{Rank: d.Rank, Name: d.Name, Count: d.Count}
	switch {
	case d.UserID != nil:
		e.UserID = *d.UserID
	case d.ID != nil:
		e.UserID = *d.ID
	}
	e.ProfileImage = d.ProfileImage
	if e.ProfileImage == "" {
		e.ProfileImage = d.AvatarURL
	}
	return e
}

func (s *Session) fetchRanking(ctx context.Context, path string, byPosition bool) ([]models.RankingEntry, error) {
	var dtos []rankingDTO
	if err := s.c.call(ctx, http.MethodGet, path, s.cookie, s.quiet, nil, &dtos); err != nil {
		return nil, err
	}
	entries := make([]models.RankingEntry, 0, len(dtos))
	for i, d := range dtos {
		e := d.toEntry()
		if byPosition {
			// The backend's rank field has been wrong for club-sent lists;
			// the array order is the ranking.
			e.Rank = i + 1
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Ranking fetches the main ranking board. GET /ranking.
func (s *Session) Ranking(ctx context.Context) ([]models.RankingEntry, error) {
	return s.fetchRanking(ctx, "/ranking", false)
}

// GlobalSent fetches the global most-compliments-sent list.
// GET /rankings/global/sent?limit=.
func (s *Session) GlobalSent(ctx context.Context, limit int) ([]models.RankingEntry, error) {
	return s.fetchRanking(ctx, fmt.Sprintf("/rankings/global/sent?limit=%d", limit), false)
}

// ClubsSent fetches the per-club sent totals across all clubs.
// GET /rankings/clubs/sent?limit=.
func (s *Session) ClubsSent(ctx context.Context, limit int) ([]models.RankingEntry, error) {
	return s.fetchRanking(ctx, fmt.Sprintf("/rankings/clubs/sent?limit=%d", limit), false)
}

// ClubSent fetches one club's sent ranking; rank is assigned from array
// position. GET /rankings/clubs/{id}/sent?limit=.
func (s *Session) ClubSent(ctx context.Context, clubID int64, limit int) ([]models.RankingEntry, error) {
	return s.fetchRanking(ctx, fmt.Sprintf("/rankings/clubs/%d/sent?limit=%d", clubID, limit), true)
}

// Badges lists all badges. GET /badges.
func (s *Session) Badges(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	if err := s.c.call(ctx, http.MethodGet, "/badges", s.cookie, s.quiet, nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// MyBadges lists the badges the member has earned. GET /badges/mine.
func (s *Session) MyBadges(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	if err := s.c.call(ctx, http.MethodGet, "/badges/mine", s.cookie, s.quiet, nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}
