package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/resilience/circuitbreaker"
	"github.com/adam4056/QuickWiki/internal/utils/text"
)

// Groq generates summaries through Groq's OpenAI-compatible chat completion
// API. Safe for concurrent use.
type Groq struct {
	client  *openai.Client
	cfg     Config
	breaker *circuitbreaker.CircuitBreaker
	metrics MetricsRecorder
	logger  *slog.Logger
}

// NewGroq creates a Groq summarizer. The go-openai client is pointed at the
// Groq endpoint via its BaseURL override.
func NewGroq(cfg Config, logger *slog.Logger) *Groq {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	logger.Info("initialized groq summarizer",
		slog.String("model", cfg.Model),
		slog.String("base_url", cfg.BaseURL))

	return &Groq{
		client:  openai.NewClientWithConfig(clientCfg),
		cfg:     cfg,
		breaker: circuitbreaker.New(circuitbreaker.CompletionAPIConfig()),
		metrics: NewPrometheusMetrics(),
		logger:  logger,
	}
}

// Summarize runs one completion call through the circuit breaker. Failures
// are mapped onto the pipeline taxonomy; the call is never re-attempted.
func (g *Groq) Summarize(ctx context.Context, req entity.SummaryRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.doSummarize(ctx, req)
	})
	if err != nil {
		mapped := g.mapError(err)
		g.metrics.RecordFailure(ProviderGroq, string(entity.KindOf(mapped)))
		return "", mapped
	}

	summary := result.(string)
	g.metrics.RecordLength(text.CountRunes(summary))
	return summary, nil
}

func (g *Groq) doSummarize(ctx context.Context, req entity.SummaryRequest) (string, error) {
	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.tokenBudget(req.Sentences),
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(req),
		}},
	})
	g.metrics.RecordDuration(ProviderGroq, time.Since(start))

	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", entity.NewError(entity.KindEmptyResponse, "completion service returned no content", nil)
	}

	summary := resp.Choices[0].Message.Content
	g.logger.DebugContext(ctx, "completion finished",
		slog.Int("input_length", text.CountRunes(req.Text)),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Int("sentences", req.Sentences))
	return summary, nil
}

// mapError classifies go-openai failures. A 429 carries the wait hint Groq
// puts in the message body; everything else transport-shaped becomes an
// upstream availability error.
func (g *Groq) mapError(err error) error {
	if entity.KindOf(err) != entity.KindInternal {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return entity.NewRateLimited(parseRetryAfter(apiErr.Message), err)
		}
		return entity.NewError(entity.KindUpstreamUnavailable, "completion service request failed", err)
	}
	if errors.Is(err, gobreaker.ErrOpenState) {
		g.logger.Warn("completion circuit breaker open, request rejected",
			slog.String("state", g.breaker.State().String()))
	}
	return entity.NewError(entity.KindUpstreamUnavailable, "completion service unavailable", err)
}
