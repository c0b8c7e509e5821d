// Package gymapi is the client for the Health & Fitness Club REST backend.
package gymapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fitclub/internal/adapters/http/perf"
	"fitclub/internal/domain/session"
)

// DefaultTimeout bounds every backend call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// UnreachableMessage is shown when the backend could not be reached. The
// transport error stays in Error.Err and the upstream_unreachable log.
const UnreachableMessage = "Could not reach the server."

// failedMessage is shown for failures that carry no backend message.
const failedMessage = "Something went wrong."

// maxBodyBytes caps how much of a backend response is read.
const maxBodyBytes = 4 << 20

// Error is returned for every failed backend call. Message is safe to show to the user.
type Error struct {
	Status  int // 0 when the backend was not reached
	Message string
	Err     error
}

// Error implements error.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the transport or decode error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Message extracts the user-facing text of err. Errors other than *Error may
// carry internal details, so they read as a fixed message.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return failedMessage
}

// Options configure a single Request.
type Options struct {
	Method  string            // defaults to GET
	Headers map[string]string // merged over the defaults
	Body    any               // JSON-encoded when non-nil
}

// Client calls the backend on behalf of the session carried in the request context.
type Client struct {
	baseURL   string
	http      *http.Client
	collector *perf.Collector
}

// NewClient creates a backend client.
// PRE: baseURL is an absolute http(s) URL
// POST: Returns a client whose calls time out after timeout (DefaultTimeout if <= 0)
func NewClient(baseURL string, timeout time.Duration, collector *perf.Collector) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		collector: collector,
	}
}

// Request performs one backend call.
// The bearer token of the session in ctx is attached when there is one, and
// Content-Type defaults to application/json unless the caller sets it.
// A 2xx body is decoded as JSON, falling back to the raw text.
// PRE: path starts with "/"
// POST: Returns the decoded body, or an *Error with a displayable message
func (c *Client) Request(ctx context.Context, path string, opts Options) (any, error) {
	body, err := c.do(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body), nil
	}
	return decoded, nil
}

// requestJSON performs a call and decodes a 2xx body into out.
func (c *Client) requestJSON(ctx context.Context, path string, opts Options, out any) error {
	body, err := c.do(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Status: http.StatusOK, Message: "unexpected response from server", Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return nil
}

// requestList decodes a JSON array; any other JSON value yields an empty list.
func requestList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.requestJSON(ctx, path, Options{}, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, &Error{Status: http.StatusOK, Message: "unexpected response from server", Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, path string, opts Options) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if sess, ok := session.FromContext(ctx); ok && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	label := method + " " + routeLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.record(label, 0, start)
		slog.Warn("upstream_unreachable", "route", label, "error", err.Error())
		return nil, &Error{Message: UnreachableMessage, Err: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.record(label, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := detailMessage(body, resp.StatusCode)
		slog.Warn("upstream_error", "route", label, "status", resp.StatusCode, "detail", msg)
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	if readErr != nil {
		slog.Warn("upstream_read_failed", "route", label, "status", resp.StatusCode, "error", readErr.Error())
		return nil, &Error{Status: resp.StatusCode, Message: failedMessage, Err: readErr}
	}
	slog.Debug("upstream_ok", "route", label, "status", resp.StatusCode)
	return body, nil
}

// detailMessage returns the "detail" string of an error body, or "HTTP <status>".
func detailMessage(body []byte, status int) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	fallback := "HTTP " + strconv.Itoa(status)
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return fallback
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil || detail == "" {
		return fallback
	}
	return detail
}

func (c *Client) record(label string, status int, start time.Time) {
	c.collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       label,
		StatusCode: status,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

// routeLabel replaces numeric path segments so ids don't explode metric cardinality.
func routeLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}
