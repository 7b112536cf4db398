package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/resilience/circuitbreaker"
	"github.com/adam4056/QuickWiki/internal/utils/text"
)

// Claude generates summaries through Anthropic's Messages API. Safe for
// concurrent use.
type Claude struct {
	client  anthropic.Client
	cfg     Config
	breaker *circuitbreaker.CircuitBreaker
	metrics MetricsRecorder
	logger  *slog.Logger
}

// NewClaude creates a Claude summarizer.
func NewClaude(cfg Config, logger *slog.Logger) *Claude {
	// The SDK retries 429s and 5xxs on its own; the pipeline surfaces
	// those failures to the caller instead.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger.Info("initialized claude summarizer", slog.String("model", cfg.Model))

	return &Claude{
		client:  anthropic.NewClient(opts...),
		cfg:     cfg,
		breaker: circuitbreaker.New(circuitbreaker.CompletionAPIConfig()),
		metrics: NewPrometheusMetrics(),
		logger:  logger,
	}
}

// Summarize runs one completion call through the circuit breaker. Failures
// are mapped onto the pipeline taxonomy; the call is never re-attempted.
func (c *Claude) Summarize(ctx context.Context, req entity.SummaryRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doSummarize(ctx, req)
	})
	if err != nil {
		mapped := c.mapError(err)
		c.metrics.RecordFailure(ProviderClaude, string(entity.KindOf(mapped)))
		return "", mapped
	}

	summary := result.(string)
	c.metrics.RecordLength(text.CountRunes(summary))
	return summary, nil
}

func (c *Claude) doSummarize(ctx context.Context, req entity.SummaryRequest) (string, error) {
	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(c.cfg.tokenBudget(req.Sentences)),
		Temperature: anthropic.Float(float64(c.cfg.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req))),
		},
	})
	c.metrics.RecordDuration(ProviderClaude, time.Since(start))

	if err != nil {
		return "", err
	}

	summary := ""
	for _, block := range message.Content {
		if block.Type == "text" {
			summary += block.Text
		}
	}
	if summary == "" {
		return "", entity.NewError(entity.KindEmptyResponse, "completion service returned no content", nil)
	}

	c.logger.DebugContext(ctx, "completion finished",
		slog.Int("input_length", text.CountRunes(req.Text)),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Int("sentences", req.Sentences))
	return summary, nil
}

// mapError classifies Anthropic SDK failures. A 429 carries the wait hint
// in the Retry-After response header.
func (c *Claude) mapError(err error) error {
	if entity.KindOf(err) != entity.KindInternal {
		return err
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return entity.NewRateLimited(retryAfterHeader(apiErr.Response), err)
		}
		return entity.NewError(entity.KindUpstreamUnavailable, "completion service request failed", err)
	}
	return entity.NewError(entity.KindUpstreamUnavailable, "completion service unavailable", err)
}

func retryAfterHeader(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil {
		return 0
	}
	return seconds
}
