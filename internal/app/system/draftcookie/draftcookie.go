// Package draftcookie persists the onboarding draft in an encrypted browser
// cookie, so an unauthenticated visitor can reload mid-wizard and resume on
// the same step. The draft carries a password, hence the block key: the
// cookie is encrypted, not just signed.
package draftcookie

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"

	"cheermate/internal/domain/models"
)

const (
	CookieName = "cheermate-draft"

	// maxAge bounds how long an abandoned draft survives.
	maxAge = 7 * 24 * 60 * 60
)

// Store encodes and decodes the draft cookie.
type Store struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// New builds a Store from the session key. The same key drives both signing
// and encryption halves; it must be at least 32 bytes.
func New(secret string, secure bool) (*Store, error) {
	if len(secret) < 32 {
		return nil, errors.New("draft cookie secret must be at least 32 bytes")
	}
	hashKey := []byte(secret)
	blockKey := []byte(secret)[:32]

	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(maxAge)

	return &Store{codec: codec, secure: secure}, nil
}

// Load returns the draft stored in the request's cookie. A missing,
// expired, or undecodable cookie yields a fresh empty draft.
func (s *Store) Load(r *http.Request) *models.OnboardingDraft {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return &models.OnboardingDraft{}
	}
	var d models.OnboardingDraft
	if err := s.codec.Decode(CookieName, c.Value, &d); err != nil {
		return &models.OnboardingDraft{}
	}
	return &d
}

// Save writes the draft back to the browser.
func (s *Store) Save(w http.ResponseWriter, d *models.OnboardingDraft) error {
	encoded, err := s.codec.Encode(CookieName, d)
	if err != nil {
		return fmt.Errorf("encode draft cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/onboarding",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the draft cookie; called after a successful registration.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/onboarding",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
