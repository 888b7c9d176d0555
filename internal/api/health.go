// internal/api/health.go
package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"sales-workers/internal/common/database"
)

type healthHandler struct {
	deps    map[string]database.Pinger
	version string
}

func (h *healthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready pings every backend and answers 503 listing the ones that failed.
func (h *healthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failures := database.Check(ctx, h.deps)
	if len(failures) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ready",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make(map[string]string, len(failures))
	for _, name := range names {
		details[name] = failures[name].Error()
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
		"status":   "not_ready",
		"failing":  names,
		"failures": details,
	})
}
