package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/resilience/circuitbreaker"
)

// disambiguationPattern matches candidate descriptions that point at
// disambiguation pages rather than articles.
var disambiguationPattern = regexp.MustCompile(`(?i)disambiguation|Topics referred to by the same term`)

// Resolver turns a free-form topic into a canonical article key using the
// Wikipedia REST search endpoint.
type Resolver struct {
	cfg     Config
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewResolver creates a Resolver with its own circuit breaker.
func NewResolver(cfg Config, logger *slog.Logger) *Resolver {
	return &Resolver{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: circuitbreaker.New(circuitbreaker.SearchAPIConfig()),
		logger:  logger,
	}
}

type searchResponse struct {
	Pages []searchPage `json:"pages"`
}

type searchPage struct {
	ID          int     `json:"id"`
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Resolve searches for the topic and picks the best candidate.
//
// Selection: when any candidate carries a description, the first candidate
// whose description is present and does not look like a disambiguation page
// wins. When the search backend returns no descriptions at all, the first
// candidate is accepted as-is. No candidate surviving the filter maps to a
// not-found error, same as an empty result set.
func (r *Resolver) Resolve(ctx context.Context, topic string) (entity.SearchCandidate, error) {
	endpoint := fmt.Sprintf("%s/w/rest.php/v1/search/page?q=%s&limit=%d",
		r.cfg.BaseURL, url.QueryEscape(topic), r.cfg.SearchLimit)

	result, err := r.breaker.Execute(func() (any, error) {
		return r.search(ctx, endpoint)
	})
	if err != nil {
		if entity.KindOf(err) != entity.KindInternal {
			return entity.SearchCandidate{}, err
		}
		return entity.SearchCandidate{}, entity.NewError(entity.KindUpstreamUnavailable, "wikipedia search unavailable", err)
	}
	pages := result.([]searchPage)

	candidate, ok := selectCandidate(pages)
	if !ok {
		r.logger.Info("no searchable article for topic", slog.String("topic", topic), slog.Int("candidates", len(pages)))
		return entity.SearchCandidate{}, entity.NewError(entity.KindNotFound, "no article found for topic", nil)
	}

	out := entity.SearchCandidate{Key: candidate.Key, Title: candidate.Title}
	if candidate.Description != nil {
		out.Description = *candidate.Description
	}
	r.logger.Debug("resolved topic",
		slog.String("topic", topic),
		slog.String("key", out.Key),
		slog.String("title", out.Title))
	return out, nil
}

func (r *Resolver) search(ctx context.Context, endpoint string) ([]searchPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("search returned status %s", strconv.Itoa(resp.StatusCode))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return parsed.Pages, nil
}

// selectCandidate applies the disambiguation filter. Candidates without a
// description are skipped unless the whole result set lacks descriptions,
// in which case the filter cannot discriminate and the first result wins.
func selectCandidate(pages []searchPage) (searchPage, bool) {
	if len(pages) == 0 {
		return searchPage{}, false
	}

	described := false
	for _, p := range pages {
		if p.Description != nil && *p.Description != "" {
			described = true
			break
		}
	}
	if !described {
		return pages[0], true
	}

	for _, p := range pages {
		if p.Description == nil || *p.Description == "" {
			continue
		}
		if disambiguationPattern.MatchString(*p.Description) {
			continue
		}
		return p, true
	}
	return searchPage{}, false
}
