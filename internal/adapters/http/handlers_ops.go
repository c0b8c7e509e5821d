package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"fitclub/internal/adapters/gymapi"
)

// handleHealth handles GET /healthz. The frontend is healthy even when the backend is not.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	backend := "ok"
	if err := s.api.Health(ctx); err != nil {
		backend = "unreachable: " + gymapi.Message(err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": backend})
}

// handlePerf handles GET /debug/perf?minutes=N&top=N
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if s.collector == nil {
		http.NotFound(w, r)
		return
	}
	minutes := queryInt(r, "minutes", 15)
	top := queryInt(r, "top", 10)
	snap := s.collector.Snapshot(time.Now().Add(-time.Duration(minutes)*time.Minute), top)
	writeJSON(w, http.StatusOK, snap)
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
