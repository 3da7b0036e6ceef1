package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler always responds OK while the process is serving.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, &Response{Status: StatusHealthy})
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReadinessHandler runs checks on every request and responds 503 when any fails.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)

		status := http.StatusOK
		text := "OK"
		if resp.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
			text = "Service Unavailable"
		}

		if wantsJSON(r) {
			writeJSON(w, status, resp)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(text))
	}
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
