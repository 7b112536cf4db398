package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/observability/logging"
)

type fakeAPI struct {
	summary entity.Summary
	err     error
	calls   int
}

func (f *fakeAPI) Summarize(_ context.Context, topic string, sentences int) (entity.Summary, error) {
	f.calls++
	return f.summary, f.err
}

func TestClient_CacheShortCircuit(t *testing.T) {
	api := &fakeAPI{summary: entity.Summary{HTML: "<p>Cats.</p>", SourceURL: "u"}}
	c := New(api, NewMemoryStore(), logging.NewLogger())

	first, err := c.Summarize(context.Background(), "cats", 3)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, api.calls)

	second, err := c.Summarize(context.Background(), "Cats", 3)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "<p>Cats.</p>", second.Summary)
	assert.Equal(t, 1, api.calls, "cache hit must not call the server")
}

func TestClient_DifferentLengthMissesCache(t *testing.T) {
	api := &fakeAPI{summary: entity.Summary{HTML: "<p>Cats.</p>", SourceURL: "u"}}
	c := New(api, NewMemoryStore(), logging.NewLogger())

	_, err := c.Summarize(context.Background(), "cats", 3)
	require.NoError(t, err)
	_, err = c.Summarize(context.Background(), "cats", 5)
	require.NoError(t, err)

	assert.Equal(t, 2, api.calls)
}

func TestClient_RecordsHistory(t *testing.T) {
	api := &fakeAPI{summary: entity.Summary{HTML: "<p>s</p>", SourceURL: "u"}}
	c := New(api, NewMemoryStore(), logging.NewLogger())

	_, err := c.Summarize(context.Background(), "cats", 3)
	require.NoError(t, err)
	_, err = c.Summarize(context.Background(), "dogs", 3)
	require.NoError(t, err)

	items, err := c.History().Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "dogs", items[0].Topic)
}

func TestClient_FromHistorySkipsHistoryUpdate(t *testing.T) {
	api := &fakeAPI{summary: entity.Summary{HTML: "<p>s</p>", SourceURL: "u"}}
	c := New(api, NewMemoryStore(), logging.NewLogger())

	_, err := c.Summarize(context.Background(), "cats", 3)
	require.NoError(t, err)
	_, err = c.Summarize(context.Background(), "dogs", 3)
	require.NoError(t, err)

	_, err = c.Summarize(context.Background(), "cats", 3, FromHistory())
	require.NoError(t, err)

	items, err := c.History().Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "dogs", items[0].Topic, "replay must not reshuffle the history")
}

func TestClient_APIErrorPassesThrough(t *testing.T) {
	api := &fakeAPI{err: entity.NewError(entity.KindNotFound, "no article found for topic", nil)}
	c := New(api, NewMemoryStore(), logging.NewLogger())

	_, err := c.Summarize(context.Background(), "qqqqzzzz", 3)

	require.Error(t, err)
	assert.Equal(t, entity.KindNotFound, entity.KindOf(err))

	items, herr := c.History().Items()
	require.NoError(t, herr)
	assert.Empty(t, items, "failed lookups are not recorded")
}

func TestClient_FailureIsNotCached(t *testing.T) {
	api := &fakeAPI{err: entity.NewError(entity.KindUpstreamUnavailable, "wikipedia search unavailable", nil)}
	c := New(api, NewMemoryStore(), logging.NewLogger())

	_, err := c.Summarize(context.Background(), "cats", 3)
	require.Error(t, err)

	api.err = nil
	api.summary = entity.Summary{HTML: "<p>s</p>", SourceURL: "u"}
	result, err := c.Summarize(context.Background(), "cats", 3)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, 2, api.calls)
}
