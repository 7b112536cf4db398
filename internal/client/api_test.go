package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

func TestHTTPAPI_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/summarize", r.URL.Path)
		assert.Equal(t, "cats", r.URL.Query().Get("topic"))
		assert.Equal(t, "3", r.URL.Query().Get("length"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"summary":"<p>Cats.</p>","originalUrl":"https://en.wikipedia.org/wiki/Cat"}`)
	}))
	defer srv.Close()

	api := NewHTTPAPI(srv.URL, 5*time.Second)
	got, err := api.Summarize(context.Background(), "cats", 3)

	require.NoError(t, err)
	assert.Equal(t, "<p>Cats.</p>", got.HTML)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Cat", got.SourceURL)
}

func TestHTTPAPI_ErrorContract(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind entity.ErrorKind
	}{
		{
			name:     "bad request",
			status:   http.StatusBadRequest,
			body:     `{"error":"topic is required"}`,
			wantKind: entity.KindBadRequest,
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"error":"no article found for topic"}`,
			wantKind: entity.KindNotFound,
		},
		{
			name:     "service unavailable",
			status:   http.StatusServiceUnavailable,
			body:     `{"error":"wikipedia search unavailable","detail":"upstream_unavailable"}`,
			wantKind: entity.KindUpstreamUnavailable,
		},
		{
			name:     "content unavailable via detail",
			status:   http.StatusInternalServerError,
			body:     `{"error":"article content unavailable","detail":"content_unavailable"}`,
			wantKind: entity.KindContentUnavailable,
		},
		{
			name:     "unknown body",
			status:   http.StatusInternalServerError,
			body:     `{}`,
			wantKind: entity.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			api := NewHTTPAPI(srv.URL, 5*time.Second)
			_, err := api.Summarize(context.Background(), "cats", 3)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, entity.KindOf(err))
		})
	}
}

func TestHTTPAPI_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "8")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"completion service rate limited","retryAfter":8}`)
	}))
	defer srv.Close()

	api := NewHTTPAPI(srv.URL, 5*time.Second)
	_, err := api.Summarize(context.Background(), "cats", 3)

	require.Error(t, err)
	e := entity.AsError(err)
	assert.Equal(t, entity.KindRateLimited, e.Kind)
	assert.Equal(t, 8, e.RetryAfter)
}

func TestHTTPAPI_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	api := NewHTTPAPI(srv.URL, time.Second)
	_, err := api.Summarize(context.Background(), "cats", 3)

	require.Error(t, err)
	assert.Equal(t, entity.KindUpstreamUnavailable, entity.KindOf(err))
}
