// internal/backend/clubs.go
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cheermate/internal/domain/models"
)

// clubDTO tolerates id/clubId spellings on club payloads.
type clubDTO struct {
	ID                *int64 `json:"id"`
	ClubID            *int64 `json:"clubId"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	University        string `json:"university"`
	ActiveMemberCount int    `json:"activeMemberCount"`
}

func (c *clubDTO) toClub() models.Club {
	club := models.Club{
		Name:              c.Name,
		Description:       c.Description,
		University:        c.University,
		ActiveMemberCount: c.ActiveMemberCount,
	}
	switch {
	case c.ID != nil:
		club.ID = *c.ID
	case c.ClubID != nil:
		club.ID = *c.ClubID
	}
	return club
}

// clubMemberDTO tolerates userId/avatarUrl spellings on member rows.
type clubMemberDTO struct {
	ID           *int64 `json:"id"`
	UserID       *int64 `json:"userId"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatarUrl"`
	ProfileImage string `json:"profileImage"`
	RequestedAt  string `json:"requestedAt"`
}

func (m *clubMemberDTO) toMember() models.ClubMember {
	member := models.ClubMember{Name: m.Name, RequestedAt: m.RequestedAt}
	switch {
	case m.ID != nil:
		member.ID = *m.ID
	case m.UserID != nil:
		member.ID = *m.UserID
	}
	member.ProfileImage = m.ProfileImage
	if member.ProfileImage == "" {
		member.ProfileImage = m.AvatarURL
	}
	return member
}

// ClubMembers is the response of /clubs/{id}/members.
type ClubMembers struct {
	ClubID  int64
	Count   int
	Members []models.ClubMember
}

// Club fetches one club. GET /clubs/{id}.
func (s *Session) Club(ctx context.Context, clubID int64) (*models.Club, error) {
	var dto clubDTO
	if err := s.c.call(ctx, http.MethodGet, fmt.Sprintf("/clubs/%d", clubID), s.cookie, s.quiet, nil, &dto); err != nil {
		return nil, err
	}
	club := dto.toClub()
	return &club, nil
}

// SearchClubs searches clubs by free text. GET /clubs/search?q=.
func (s *Session) SearchClubs(ctx context.Context, query string) ([]models.Club, error) {
	var dtos []clubDTO
	path := "/clubs/search?q=" + url.QueryEscape(query)
	if err := s.c.call(ctx, http.MethodGet, path, s.cookie, s.quiet, nil, &dtos); err != nil {
		return nil, err
	}
	clubs := make([]models.Club, 0, len(dtos))
	for _, d := range dtos {
		clubs = append(clubs, d.toClub())
	}
	return clubs, nil
}

// CreateClubInput is the club creation payload.
type CreateClubInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	University  string `json:"university,omitempty"`
}

// CreateClub creates a club. POST /clubs.
func (s *Session) CreateClub(ctx context.Context, in CreateClubInput) (*models.Club, error) {
	var dto clubDTO
	if err := s.c.call(ctx, http.MethodPost, "/clubs", s.cookie, s.quiet, in, &dto); err != nil {
		return nil, err
	}
	club := dto.toClub()
	return &club, nil
}

// DeleteClub removes a club. DELETE /clubs/{id}.
func (s *Session) DeleteClub(ctx context.Context, clubID int64) error {
	return s.c.call(ctx, http.MethodDelete, fmt.Sprintf("/clubs/%d", clubID), s.cookie, s.quiet, nil, nil)
}

// JoinClub submits a join request. POST /clubs/{id}/join. The returned
// status is client-asserted UI state until the next full profile reload.
func (s *Session) JoinClub(ctx context.Context, clubID int64) (*models.JoinRequest, error) {
	var jr models.JoinRequest
	if err := s.c.call(ctx, http.MethodPost, fmt.Sprintf("/clubs/%d/join", clubID), s.cookie, s.quiet, nil, &jr); err != nil {
		return nil, err
	}
	return &jr, nil
}

// Members lists a club's members. GET /clubs/{id}/members?active={bool};
// active=true returns approved members, active=false the pending requests.
func (s *Session) Members(ctx context.Context, clubID int64, active bool) (*ClubMembers, error) {
	var dto struct {
		ClubID            *int64          `json:"clubId"`
		Count             *int            `json:"count"`
		MemberCount       *int            `json:"memberCount"`
		ActiveMemberCount *int            `json:"activeMemberCount"`
		Members           []clubMemberDTO `json:"members"`
	}
	path := fmt.Sprintf("/clubs/%d/members?active=%t", clubID, active)
	if err := s.c.call(ctx, http.MethodGet, path, s.cookie, s.quiet, nil, &dto); err != nil {
		return nil, err
	}

	out := &ClubMembers{ClubID: clubID}
	if dto.ClubID != nil {
		out.ClubID = *dto.ClubID
	}
	switch {
	case dto.Count != nil:
		out.Count = *dto.Count
	case dto.MemberCount != nil:
		out.Count = *dto.MemberCount
	case dto.ActiveMemberCount != nil:
		out.Count = *dto.ActiveMemberCount
	default:
		out.Count = len(dto.Members)
	}
	for _, m := range dto.Members {
		out.Members = append(out.Members, m.toMember())
	}
	return out, nil
}

// ApproveMember approves a pending join request.
// POST /clubs/{id}/members/{userId}/approve.
func (s *Session) ApproveMember(ctx context.Context, clubID, userID int64) (*models.JoinRequest, error) {
	return s.memberDecision(ctx, clubID, userID, "approve")
}

// RejectMember rejects a pending join request.
// POST /clubs/{id}/members/{userId}/reject.
func (s *Session) RejectMember(ctx context.Context, clubID, userID int64) (*models.JoinRequest, error) {
	return s.memberDecision(ctx, clubID, userID, "reject")
}

func (s *Session) memberDecision(ctx context.Context, clubID, userID int64, action string) (*models.JoinRequest, error) {
	var jr models.JoinRequest
	path := fmt.Sprintf("/clubs/%d/members/%d/%s", clubID, userID, action)
	if err := s.c.call(ctx, http.MethodPost, path, s.cookie, s.quiet, nil, &jr); err != nil {
		return nil, err
	}
	return &jr, nil
}
