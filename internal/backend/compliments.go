// internal/backend/compliments.go
package backend

import (
	"context"
	"fmt"
	"net/http"

	"cheermate/internal/domain/models"
)

// categoryDTO tolerates the two candidate-list spellings the backend has
// shipped ("candidates" and "users").
type categoryDTO struct {
	ComplimentID int64           `json:"complimentId"`
	Emoji        string          `json:"emoji"`
	Prompt       string          `json:"prompt"`
	Candidates   []clubMemberDTO `json:"candidates"`
	Users        []clubMemberDTO `json:"users"`
}

func (d *categoryDTO) toCategory() models.ComplimentCategory {
	cat := models.ComplimentCategory{
		ComplimentID: d.ComplimentID,
		Emoji:        d.Emoji,
		Prompt:       d.Prompt,
	}
	rows := d.Candidates
	if len(rows) == 0 {
		rows = d.Users
	}
	for _, m := range rows {
		member := m.toMember()
		cat.Candidates = append(cat.Candidates, models.Candidate{
			ID:           member.ID,
			Name:         member.Name,
			ProfileImage: member.ProfileImage,
		})
	}
	return cat
}

// Categories fetches the ordered compliment categories for a club, with the
// eligible candidates per category. POST /compliments/clubs/{clubId}, or the
// per-sender variant /compliments/clubs/{clubId}/users/{userId} when
// senderID is non-zero.
func (s *Session) Categories(ctx context.Context, clubID, senderID int64) ([]models.ComplimentCategory, error) {
	path := fmt.Sprintf("/compliments/clubs/%d", clubID)
	if senderID != 0 {
		path = fmt.Sprintf("/compliments/clubs/%d/users/%d", clubID, senderID)
	}

	var dtos []categoryDTO
	if err := s.c.call(ctx, http.MethodPost, path, s.cookie, s.quiet, map[string]any{}, &dtos); err != nil {
		return nil, err
	}
	cats := make([]models.ComplimentCategory, 0, len(dtos))
	for _, d := range dtos {
		cats = append(cats, d.toCategory())
	}
	return cats, nil
}

// SendCompliment posts one selection. PATCH /compliments/select with
// {complimentId, userId, anonymity}.
func (s *Session) SendCompliment(ctx context.Context, complimentID, userID int64, anonymous bool) error {
	body := map[string]any{
		"complimentId": complimentID,
		"userId":       userID,
		"anonymity":    anonymous,
	}
	return s.c.call(ctx, http.MethodPatch, "/compliments/select", s.cookie, s.quiet, body, nil)
}

// Received lists compliments the member has received. GET /compliments/received.
func (s *Session) Received(ctx context.Context) ([]models.PraiseMessage, error) {
	var msgs []models.PraiseMessage
	if err := s.c.call(ctx, http.MethodGet, "/compliments/received", s.cookie, s.quiet, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Sent lists compliments the member has sent. GET /compliments/send.
func (s *Session) Sent(ctx context.Context) ([]models.PraiseMessage, error) {
	var msgs []models.PraiseMessage
	if err := s.c.call(ctx, http.MethodGet, "/compliments/send", s.cookie, s.quiet, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
