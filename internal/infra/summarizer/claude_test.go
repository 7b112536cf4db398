package summarizer

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/observability/logging"
)

func claudeForTest() *Claude {
	cfg := DefaultConfig(ProviderClaude)
	cfg.APIKey = "test-key"
	return NewClaude(cfg, logging.NewLogger())
}

func TestClaude_MapError_RateLimited(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "12")
	cause := &anthropic.Error{
		StatusCode: http.StatusTooManyRequests,
		Response:   &http.Response{Header: header},
	}

	err := claudeForTest().mapError(fmt.Errorf("messages call: %w", cause))

	e := entity.AsError(err)
	assert.Equal(t, entity.KindRateLimited, e.Kind)
	assert.Equal(t, 12, e.RetryAfter)
}

func TestClaude_MapError_RateLimitedWithoutHeader(t *testing.T) {
	cause := &anthropic.Error{StatusCode: http.StatusTooManyRequests}

	err := claudeForTest().mapError(cause)

	e := entity.AsError(err)
	assert.Equal(t, entity.KindRateLimited, e.Kind)
	assert.Equal(t, entity.DefaultRetryAfterSeconds, e.RetryAfter)
}

func TestClaude_MapError_OtherStatus(t *testing.T) {
	cause := &anthropic.Error{StatusCode: http.StatusBadGateway}

	err := claudeForTest().mapError(cause)

	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(err))
}

func TestClaude_MapError_Transport(t *testing.T) {
	err := claudeForTest().mapError(errors.New("dial tcp: connection refused"))

	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(err))
}

func TestClaude_MapError_KeepsClassifiedErrors(t *testing.T) {
	cause := entity.NewError(entity.KindEmptyResponse, "completion service returned no content", nil)

	err := claudeForTest().mapError(cause)

	require.Equal(t, entity.KindEmptyResponse, entity.KindOf(err))
}

func TestRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, retryAfterHeader(nil))

	header := http.Header{}
	header.Set("Retry-After", "not-a-number")
	assert.Equal(t, 0, retryAfterHeader(&http.Response{Header: header}))

	header.Set("Retry-After", "30")
	assert.Equal(t, 30, retryAfterHeader(&http.Response{Header: header}))
}
