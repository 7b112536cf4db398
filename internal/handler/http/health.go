package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus describes a single health check item.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports service health. The service holds no connections
// of its own, so the checks cover configuration of the upstream clients.
type HealthHandler struct {
	Version string
	// SummarizerProvider is the configured completion backend ("groq",
	// "claude", or "noop").
	SummarizerProvider string
}

// ServeHTTP returns 200 with per-check detail. A noop summarizer is
// reported as degraded but does not fail the check: the service still
// answers requests.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{}

	switch h.SummarizerProvider {
	case "noop":
		checks["summarizer"] = CheckStatus{Status: "degraded", Message: "noop provider configured"}
	case "":
		checks["summarizer"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
	default:
		checks["summarizer"] = CheckStatus{Status: "healthy", Message: h.SummarizerProvider}
	}

	status := "healthy"
	code := http.StatusOK
	if checks["summarizer"].Status == "unhealthy" {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

// ServeHTTP always returns 200 while the process can serve requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
