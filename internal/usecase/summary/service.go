// Package summary orchestrates the topic-to-summary pipeline: resolve the
// topic to an article, fetch its content, and generate the summary. Each
// stage failure short-circuits the pipeline with a classified error.
package summary

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

// Resolver turns a free-form topic into an article candidate.
type Resolver interface {
	Resolve(ctx context.Context, topic string) (entity.SearchCandidate, error)
}

// Fetcher retrieves the content of a resolved article.
type Fetcher interface {
	Fetch(ctx context.Context, candidate entity.SearchCandidate) (entity.ArticleContent, error)
}

// Summarizer generates an HTML summary fragment from article text.
type Summarizer interface {
	Summarize(ctx context.Context, req entity.SummaryRequest) (string, error)
}

// Service runs the pipeline. Safe for concurrent use; all state is
// request-scoped.
type Service struct {
	resolver   Resolver
	fetcher    Fetcher
	summarizer Summarizer
	logger     *slog.Logger
}

// NewService wires the three pipeline stages together.
func NewService(resolver Resolver, fetcher Fetcher, summarizer Summarizer, logger *slog.Logger) *Service {
	return &Service{
		resolver:   resolver,
		fetcher:    fetcher,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Summarize produces a summary of the given topic in the requested number
// of sentences. A blank topic is rejected before any upstream call; a
// non-positive sentence count falls back to the default rather than
// failing. Content the fetch stage marks ready is returned without a
// completion call.
func (s *Service) Summarize(ctx context.Context, topic string, sentences int) (entity.Summary, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return entity.Summary{}, entity.NewError(entity.KindBadRequest, "topic is required", nil)
	}
	sentences = entity.CoerceSentenceCount(sentences)

	start := time.Now()
	logger := s.logger.With(slog.String("topic", topic), slog.Int("sentences", sentences))

	candidate, err := s.resolver.Resolve(ctx, topic)
	if err != nil {
		logger.Warn("resolve stage failed", slog.Any("error", err))
		return entity.Summary{}, err
	}

	content, err := s.fetcher.Fetch(ctx, candidate)
	if err != nil {
		logger.Warn("fetch stage failed", slog.String("key", candidate.Key), slog.Any("error", err))
		return entity.Summary{}, err
	}

	if content.Ready {
		logger.Info("serving source-provided extract",
			slog.String("key", candidate.Key),
			slog.Duration("duration", time.Since(start)))
		return entity.Summary{
			HTML:      "<p>" + html.EscapeString(content.Text) + "</p>",
			SourceURL: content.SourceURL,
		}, nil
	}

	fragment, err := s.summarizer.Summarize(ctx, entity.SummaryRequest{
		Text:      content.Text,
		Sentences: sentences,
	})
	if err != nil {
		logger.Warn("summarize stage failed", slog.String("key", candidate.Key), slog.Any("error", err))
		return entity.Summary{}, err
	}
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return entity.Summary{}, entity.NewError(entity.KindEmptyResponse, "completion service returned no content", nil)
	}

	logger.Info("summary generated",
		slog.String("key", candidate.Key),
		slog.Int("summary_length", len(fragment)),
		slog.Duration("duration", time.Since(start)))

	return entity.Summary{HTML: fragment, SourceURL: content.SourceURL}, nil
}
