// internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout is the upper bound per backend call. Exceeding it surfaces
// as a network-class error.
const DefaultTimeout = 10 * time.Second

const basePath = "/api"

// Client is the single HTTP wrapper for all praise-service calls. It does no
// retrying of its own; the callers that retry do so through retrypolicy.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New constructs a Client for the praise service at baseURL. A zero timeout
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// Session binds a Client to one browser session's upstream auth cookie.
// The zero cookie is valid for pre-auth endpoints.
type Session struct {
	c      *Client
	cookie string
	quiet  bool
}

// WithAuth returns a Session that sends the given upstream session cookie
// (the "name=value" pair captured at login) on every call.
func (c *Client) WithAuth(cookie string) *Session {
	return &Session{c: c, cookie: cookie}
}

// Quiet returns a copy of the session that logs no 5xx diagnostics. Used on
// pre-auth flows where server errors are expected (account-creation races).
func (s *Session) Quiet() *Session {
	q := *s
	q.quiet = true
	return &q
}

// call performs one JSON round trip and classifies any failure.
func (c *Client) call(ctx context.Context, method, path, cookie string, quiet bool, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, rd)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return c.classify(method, path, quiet, res, req.Header.Get("X-Request-ID"))
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	return nil
}

// Ping reports whether the praise service is reachable. Any HTTP response
// counts as reachable, even an error status; only transport failures fail.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+basePath+"/health", nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: http.MethodGet, Path: "/health", Err: err}
	}
	res, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: http.MethodGet, Path: "/health", Err: err}
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	return nil
}

// callForCookie is call for the login endpoint: it additionally returns the
// upstream session cookie from the response as a "name=value" pair.
func (c *Client) callForCookie(ctx context.Context, path string, body, out any) (string, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Method: http.MethodPost, Path: path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath+path, bytes.NewReader(buf))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Method: http.MethodPost, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", http.MethodPost),
			zap.String("path", path),
			zap.Error(err))
		return "", &Error{Kind: KindNetwork, Method: http.MethodPost, Path: path, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		// Login failures on public pages are expected; keep them quiet.
		return "", c.classify(http.MethodPost, path, true, res, req.Header.Get("X-Request-ID"))
	}

	// The upstream may set cookies besides the session (load-balancer
	// affinity, tracing); send them all back so none of them is lost.
	var cookie string
	if cs := res.Cookies(); len(cs) > 0 {
		pairs := make([]string, 0, len(cs))
		for _, c := range cs {
			pairs = append(pairs, c.Name+"="+c.Value)
		}
		cookie = strings.Join(pairs, "; ")
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return "", &Error{Kind: KindNetwork, Method: http.MethodPost, Path: path, Err: err}
		}
	}
	return cookie, nil
}

// classify turns a non-2xx response into a typed *Error and emits the
// structured diagnostics the operator will want for 404s and 5xx.
func (c *Client) classify(method, path string, quiet bool, res *http.Response, reqID string) error {
	msg := readMessage(res.Body)

	e := &Error{Method: method, Path: path, Status: res.StatusCode, Message: msg}
	switch {
	case res.StatusCode == http.StatusUnauthorized:
		e.Kind = KindUnauthenticated
	case res.StatusCode == http.StatusNotFound:
		e.Kind = KindNotFound
		c.log.Warn("backend route not found; check the endpoint and the service version",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID))
	case res.StatusCode >= 500:
		e.Kind = KindServer
		if !quiet {
			c.log.Error("backend server error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", res.StatusCode),
				zap.String("request_id", reqID),
				zap.String("message", msg))
		}
	default:
		e.Kind = KindValidation
	}
	return e
}

// readMessage extracts {"message": ...} from an error body, tolerating plain
// text and empty bodies.
func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 8<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return ""
	}
	return text
}
