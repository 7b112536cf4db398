// Package respond writes HTTP responses in the shapes the API contract
// defines: JSON payloads, bare HTML fragments, and the uniform error body
// {error, detail?, retryAfter?}. Underlying causes of server-side failures
// are logged, never sent to clients.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

// ErrorBody is the JSON error response shape.
type ErrorBody struct {
	Error string `json:"error"`
	// Detail carries additional safe context, e.g. the offending parameter.
	Detail string `json:"detail,omitempty"`
	// RetryAfter is the suggested wait in seconds, present only on 429s.
	RetryAfter int `json:"retryAfter,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent, so all we can do is log.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// HTMLFragment writes the given HTML fragment verbatim with a 200 status.
// The fragment is trusted output of the pipeline; no sanitization happens
// here.
func HTMLFragment(w http.ResponseWriter, fragment string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(fragment)); err != nil {
		slog.Default().Error("failed to write HTML response", slog.Any("error", err))
	}
}

// Error maps a pipeline failure onto the error contract. Client-side kinds
// (bad_request, not_found, rate_limited) expose their message directly;
// server-side kinds return a generic message and log the cause.
func Error(w http.ResponseWriter, err error) {
	e := entity.AsError(err)
	code := e.HTTPStatus()
	body := ErrorBody{Error: e.Message}

	switch e.Kind {
	case entity.KindBadRequest, entity.KindNotFound:
		// Safe to show as-is.
	case entity.KindRateLimited:
		body.RetryAfter = e.RetryAfter
		w.Header().Set("Retry-After", strconv.Itoa(e.RetryAfter))
	default:
		slog.Default().Error("request failed",
			slog.String("kind", string(e.Kind)),
			slog.Int("code", code),
			slog.Any("error", err))
		body.Detail = string(e.Kind)
	}

	JSON(w, code, body)
}
