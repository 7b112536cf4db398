package client

import (
	"context"
	"log/slog"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

// Result is a summary plus where it came from.
type Result struct {
	Summary     string
	OriginalURL string
	// Cached reports that the result was served from the local cache
	// without contacting the server.
	Cached bool
}

// Client combines the remote summarize API with the local cache and search
// history.
type Client struct {
	api     SummaryAPI
	cache   *Cache
	history *History
	logger  *slog.Logger
}

// New creates a Client persisting its cache and history in store.
func New(api SummaryAPI, store Store, logger *slog.Logger) *Client {
	return &Client{
		api:     api,
		cache:   NewCache(store),
		history: NewHistory(store),
		logger:  logger,
	}
}

type summarizeOptions struct {
	fromHistory bool
}

// SummarizeOption adjusts a single Summarize call.
type SummarizeOption func(*summarizeOptions)

// FromHistory marks the call as a replay of an existing history entry, so
// the history is left untouched instead of reshuffled.
func FromHistory() SummarizeOption {
	return func(o *summarizeOptions) { o.fromHistory = true }
}

// Summarize returns a summary for topic, serving from the cache when a
// fresh entry exists and recording the query in the history. Cache and
// history failures are logged but never fail the call; the remote result
// still reaches the caller.
func (c *Client) Summarize(ctx context.Context, topic string, sentences int, opts ...SummarizeOption) (Result, error) {
	var options summarizeOptions
	for _, opt := range opts {
		opt(&options)
	}
	sentences = entity.CoerceSentenceCount(sentences)

	if entry, ok, err := c.cache.Get(topic, sentences); err != nil {
		c.logger.Warn("cache lookup failed", slog.Any("error", err))
	} else if ok {
		c.recordHistory(topic, sentences, options)
		return Result{Summary: entry.Summary, OriginalURL: entry.OriginalURL, Cached: true}, nil
	}

	summary, err := c.api.Summarize(ctx, topic, sentences)
	if err != nil {
		return Result{}, err
	}

	if err := c.cache.Set(topic, sentences, summary.HTML, summary.SourceURL); err != nil {
		c.logger.Warn("cache store failed", slog.Any("error", err))
	}
	c.recordHistory(topic, sentences, options)

	return Result{Summary: summary.HTML, OriginalURL: summary.SourceURL}, nil
}

func (c *Client) recordHistory(topic string, sentences int, options summarizeOptions) {
	if options.fromHistory {
		return
	}
	if _, err := c.history.Add(topic, sentences); err != nil {
		c.logger.Warn("history update failed", slog.Any("error", err))
	}
}

// History exposes the search history collection.
func (c *Client) History() *History { return c.history }

// Cache exposes the result cache collection.
func (c *Client) Cache() *Cache { return c.cache }
