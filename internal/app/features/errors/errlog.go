// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with the shared error page, so
// handlers can fail in one line: log the operator detail, show the user a
// clean message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger on the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and renders the error page with
// userMsg and backURL.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.String("path", r.URL.Path),
		zap.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	RenderError(w, r, userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders the error page with
// userMsg and backURL.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.String("path", r.URL.Path),
		zap.Error(err))
	w.WriteHeader(http.StatusBadRequest)
	RenderError(w, r, userMsg, backURL)
}
