// internal/backend/errors.go
package backend

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call. The session layer and the feature
// handlers branch on Kind, never on raw status codes.
type Kind int

const (
	// KindNetwork covers transport failures and timeouts; no HTTP response
	// was received.
	KindNetwork Kind = iota

	// KindUnauthenticated is a 401. Handled silently: the session is reset
	// and, outside public paths, the browser is sent to /login.
	KindUnauthenticated

	// KindValidation is any other 4xx. The backend's message is surfaced to
	// the user verbatim.
	KindValidation

	// KindNotFound is a 404, kept distinct from KindValidation so callers
	// can render a not-found page instead of echoing a message.
	KindNotFound

	// KindServer is a 5xx. Retryable where a caller opts in via retrypolicy.
	KindServer
)

// Error is the classified failure of one backend call.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int    // zero for KindNetwork
	Message string // backend-provided message, if any
	Err     error  // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend: %s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("backend: %s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %s %s: %d", e.Method, e.Path, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func kindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

// IsUnauthenticated reports whether err is a 401 from the backend.
func IsUnauthenticated(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindUnauthenticated
}

// IsValidation reports whether err is a message-bearing 4xx (not 401/404).
func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNotFound
}

// IsServer reports whether err is a 5xx from the backend.
func IsServer(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindServer
}

// IsNetwork reports whether err is a transport failure or timeout.
func IsNetwork(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNetwork
}

// UserMessage returns the backend's message for validation failures, or
// fallback otherwise. Only validation messages are fit to echo verbatim;
// server-error bodies stay in the logs.
func UserMessage(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && be.Kind == KindValidation && be.Message != "" {
		return be.Message
	}
	return fallback
}
