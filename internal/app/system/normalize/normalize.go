// Package normalize canonicalizes user input before it is validated or sent
// to the praise service.
package normalize

import "strings"

// Email trims whitespace and lowercases.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace; case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims whitespace; case is preserved.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Wire values for gender; the registration endpoint accepts nothing else.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Gender maps the onboarding form's display labels to the wire enum. Wire
// values pass through unchanged. The second return is false for anything
// unmapped; callers must treat that as a validation failure and never send
// the value to the backend.
func Gender(label string) (string, bool) {
	switch strings.TrimSpace(label) {
	case "남성", GenderMale:
		return GenderMale, true
	case "여성", GenderFemale:
		return GenderFemale, true
	}
	return "", false
}

// GenderLabel maps a wire gender back to its display label. Unknown values
// come back unchanged.
func GenderLabel(wire string) string {
	switch wire {
	case GenderMale:
		return "남성"
	case GenderFemale:
		return "여성"
	}
	return wire
}
