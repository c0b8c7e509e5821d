package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fitclub/internal/adapters/http/perf"
)

// DefaultSlowRequestMs is the default threshold for slow request warnings.
const DefaultSlowRequestMs = 200

// requestIDCounter is an atomic counter for request IDs.
var requestIDCounter uint64

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the underlying ResponseWriter.
func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

var statusWriterPool = sync.Pool{
	New: func() any {
		return &statusWriter{}
	},
}

type routeKey struct{}

// routeLabel is filled in by RoutePattern once the mux has matched a request.
type routeLabel struct {
	pattern string
}

// RoutePattern wraps a ServeMux so Timing can label requests by the matched
// pattern ("GET /ui/login/{role}") instead of the raw path. It must be the
// innermost middleware: the mux sets r.Pattern on the request it is given.
func RoutePattern(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rl, ok := r.Context().Value(routeKey{}).(*routeLabel); ok {
				rl.pattern = r.Pattern
			}
		}()
		mux.ServeHTTP(w, r)
	})
}

// requestLabel is "METHOD pattern" when a pattern matched, else "METHOD path".
func requestLabel(method, path, pattern string) string {
	if pattern == "" {
		return method + " " + path
	}
	if strings.Contains(pattern, " ") {
		return pattern
	}
	return method + " " + pattern
}

// Timing returns middleware that logs request duration.
// Requests to /static/ are excluded.
// Requests at or above slowMs log at WARN, the rest at DEBUG.
// If collector is non-nil, entries are recorded for /debug/perf.
func Timing(collector *perf.Collector, slowMs int) func(http.Handler) http.Handler {
	if slowMs <= 0 {
		slowMs = DefaultSlowRequestMs
	}
	threshold := float64(slowMs)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if strings.HasPrefix(path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			reqID := atomic.AddUint64(&requestIDCounter, 1)
			route := &routeLabel{}
			r = r.WithContext(context.WithValue(r.Context(), routeKey{}, route))

			sw := statusWriterPool.Get().(*statusWriter)
			sw.ResponseWriter = w
			sw.status = http.StatusOK
			defer func() {
				durationMs := float64(time.Since(start).Microseconds()) / 1000.0
				level := slog.LevelDebug
				event := "request"
				if durationMs >= threshold {
					level = slog.LevelWarn
					event = "slow_request"
				}
				slog.Log(r.Context(), level, event,
					"request_id", reqID,
					"method", r.Method,
					"path", path,
					"route", route.pattern,
					"status", sw.status,
					"duration_ms", durationMs,
				)

				collector.Record(perf.Entry{
					Kind:       perf.KindRequest,
					Path:       requestLabel(r.Method, path, route.pattern),
					StatusCode: sw.status,
					DurationMs: durationMs,
					Timestamp:  start,
				})

				sw.ResponseWriter = nil
				statusWriterPool.Put(sw)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
