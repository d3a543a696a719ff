// Package inputval validates user input at the form boundary, before any
// backend round trip.
package inputval

import (
	"net/mail"
	"net/url"
	"strings"
)

// MinPasswordLength applies at registration; login accepts whatever the
// account already has.
const MinPasswordLength = 6

// IsValidEmail reports whether s is a single bare address. Display-name
// forms ("Ana <a@b.c>") are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

// IsValidPassword reports whether s meets the registration minimum.
func IsValidPassword(s string) bool {
	return len(s) >= MinPasswordLength
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL. Used for
// avatar URLs before they are sent to the backend.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
