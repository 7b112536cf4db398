package entity

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure the pipeline can surface. Each stage
// maps its upstream failures onto exactly one kind, so callers can handle
// the taxonomy exhaustively instead of string-matching messages.
type ErrorKind string

const (
	// KindBadRequest indicates missing or invalid caller input.
	KindBadRequest ErrorKind = "bad_request"
	// KindNotFound indicates the search produced no usable candidate
	// (empty result set, or disambiguation pages only).
	KindNotFound ErrorKind = "not_found"
	// KindUpstreamUnavailable indicates a transport error or non-2xx status
	// from any upstream service, excluding completion-service 429s.
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	// KindRateLimited indicates a 429 from the completion service. The
	// error carries a retry-after hint in seconds.
	KindRateLimited ErrorKind = "rate_limited"
	// KindContentUnavailable indicates extraction succeeded transport-wise
	// but yielded no usable text.
	KindContentUnavailable ErrorKind = "content_unavailable"
	// KindEmptyResponse indicates the completion service answered without
	// any completion text.
	KindEmptyResponse ErrorKind = "empty_response"
	// KindInternal covers anything uncategorized, such as an unexpected
	// response shape.
	KindInternal ErrorKind = "internal"
)

// DefaultRetryAfterSeconds is used when a rate-limited upstream response
// carries no usable retry-after hint.
const DefaultRetryAfterSeconds = 5

// Error is the uniform failure type surfaced by the pipeline.
type Error struct {
	Kind    ErrorKind
	Message string
	// RetryAfter is the suggested wait in seconds. Only meaningful for
	// KindRateLimited.
	RetryAfter int
	// Err is the underlying cause, kept for logs and never shown to callers.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewError creates an Error of the given kind wrapping an optional cause.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// NewRateLimited creates a rate-limited Error with a retry-after hint in
// seconds. Non-positive hints fall back to DefaultRetryAfterSeconds.
func NewRateLimited(retryAfter int, cause error) *Error {
	if retryAfter < 1 {
		retryAfter = DefaultRetryAfterSeconds
	}
	return &Error{
		Kind:       KindRateLimited,
		Message:    "completion service rate limited",
		RetryAfter: retryAfter,
		Err:        cause,
	}
}

// KindOf extracts the ErrorKind from an error chain. Errors that do not
// carry an *Error are classified as KindInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// AsError returns the *Error in the chain, or wraps err as KindInternal so
// every failure leaving the pipeline has a kind and a status mapping.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewError(KindInternal, "internal error", err)
}
