// internal/backend/members.go
package backend

import (
	"context"
	"net/http"

	"cheermate/internal/domain/models"
)

// memberDTO tolerates both backend spellings of the member fields. The
// backend sends userId/avatarUrl in some responses and id/profileImage in
// others; toUser folds them into the canonical model.
type memberDTO struct {
	ID           *int64    `json:"id"`
	UserID       *int64    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Nickname     string    `json:"nickname"`
	AvatarURL    string    `json:"avatarUrl"`
	ProfileImage string    `json:"profileImage"`
	Gender       string    `json:"gender"`
	University   string    `json:"university"`
	Clubs        []clubDTO `json:"clubs"`
}

func (m *memberDTO) toUser() *models.User {
	u := &models.User{
		Email:      m.Email,
		Name:       m.Name,
		Nickname:   m.Nickname,
		Gender:     m.Gender,
		University: m.University,
	}
	switch {
	case m.ID != nil:
		u.ID = *m.ID
	case m.UserID != nil:
		u.ID = *m.UserID
	}
	u.ProfileImage = m.ProfileImage
	if u.ProfileImage == "" {
		u.ProfileImage = m.AvatarURL
	}
	for _, c := range m.Clubs {
		u.Clubs = append(u.Clubs, c.toClub())
	}
	return u
}

// hasID reports whether the response carried a usable member id. When a
// login response lacks one, the session layer falls back to /members/me
// under the retry policy.
func (m *memberDTO) hasID() bool {
	return m.ID != nil || m.UserID != nil
}

// RegisterInput is the registration payload. Gender must already be the
// wire enum ("male" | "female"); the onboarding flow maps labels before it
// gets here.
type RegisterInput struct {
	Email      string             `json:"email"`
	Password   string             `json:"password"`
	Name       string             `json:"name"`
	Nickname   *string            `json:"nickname"`
	AvatarURL  string             `json:"avatarUrl"`
	Gender     string             `json:"gender"`
	Selections []models.Selection `json:"selections"`
}

// Register creates the member account. POST /members/register.
// Server errors are not logged here: registration races are expected while
// the account backend warms up, and the caller surfaces the failure anyway.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.call(ctx, http.MethodPost, "/members/register", "", true, in, nil)
}

// LoginResult is what a successful login yields: the member record as the
// backend returned it (possibly without an id) and the upstream session
// cookie to attach to all subsequent calls.
type LoginResult struct {
	User   *models.User
	HasID  bool
	Cookie string
}

// Login authenticates and captures the upstream session cookie from the
// Set-Cookie response header. POST /members/login.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var dto memberDTO
	cookie, err := c.callForCookie(ctx, "/members/login", body, &dto)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: dto.toUser(), HasID: dto.hasID(), Cookie: cookie}, nil
}

// Me fetches the current member. GET /members/me.
func (s *Session) Me(ctx context.Context) (*models.User, error) {
	var dto memberDTO
	if err := s.c.call(ctx, http.MethodGet, "/members/me", s.cookie, s.quiet, nil, &dto); err != nil {
		return nil, err
	}
	return dto.toUser(), nil
}

// ProfileUpdate carries the only fields the update endpoint accepts. Gender
// and id are never sent; the allow-list holds by construction.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	// The backend calls this field avatarUrl even though it serves it back
	// as profileImage on reads.
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// UpdateProfile patches the member record and returns the updated user.
// PATCH /members.
func (s *Session) UpdateProfile(ctx context.Context, patch ProfileUpdate) (*models.User, error) {
	var dto memberDTO
	if err := s.c.call(ctx, http.MethodPatch, "/members", s.cookie, s.quiet, patch, &dto); err != nil {
		return nil, err
	}
	return dto.toUser(), nil
}

// Logout invalidates the upstream session. POST /members/logout.
func (s *Session) Logout(ctx context.Context) error {
	return s.c.call(ctx, http.MethodPost, "/members/logout", s.cookie, s.quiet, nil, nil)
}

// DeleteAccount removes the member. DELETE /members.
func (s *Session) DeleteAccount(ctx context.Context) error {
	return s.c.call(ctx, http.MethodDelete, "/members", s.cookie, s.quiet, nil, nil)
}
