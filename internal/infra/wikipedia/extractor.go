package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/resilience/circuitbreaker"
	"github.com/adam4056/QuickWiki/internal/utils/text"
)

// FallbackFetcher fetches readable text from a full article page. It is
// consulted when the extract comes back shorter than the configured
// threshold.
type FallbackFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Extractor fetches article content for a resolved candidate. Depending on
// the configured mode it uses the extracts API (plain or HTML) or the REST
// page-summary endpoint.
type Extractor struct {
	cfg      Config
	client   *http.Client
	breaker  *circuitbreaker.CircuitBreaker
	fallback FallbackFetcher
	logger   *slog.Logger
}

// NewExtractor creates an Extractor. fallback may be nil, in which case
// short extracts are used as-is.
func NewExtractor(cfg Config, fallback FallbackFetcher, logger *slog.Logger) *Extractor {
	return &Extractor{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		breaker:  circuitbreaker.New(circuitbreaker.ExtractAPIConfig()),
		fallback: fallback,
		logger:   logger,
	}
}

// Fetch retrieves the article content for the candidate and returns it with
// its canonical source URL. In summary mode the returned content is marked
// Ready, meaning it can be served without a completion call.
func (e *Extractor) Fetch(ctx context.Context, candidate entity.SearchCandidate) (entity.ArticleContent, error) {
	sourceURL := e.articleURL(candidate.Key)

	var (
		raw string
		err error
	)
	switch e.cfg.ExtractMode {
	case ModeSummary:
		raw, err = e.fetchSummary(ctx, candidate.Key)
	default:
		raw, err = e.fetchExtract(ctx, candidate.Key)
	}
	if err != nil {
		return entity.ArticleContent{}, err
	}

	content := raw
	if e.cfg.ExtractMode == ModeHTML {
		content, err = stripMarkup(content)
		if err != nil {
			return entity.ArticleContent{}, entity.NewError(entity.KindInternal, "clean article markup", err)
		}
	}
	content = text.CollapseWhitespace(content)

	if content == "" {
		e.logger.Warn("article has no usable content", slog.String("key", candidate.Key))
		return entity.ArticleContent{}, entity.NewError(entity.KindContentUnavailable, "article content unavailable", nil)
	}

	if e.cfg.ExtractMode != ModeSummary && e.fallback != nil &&
		e.cfg.FallbackThreshold > 0 && text.CountRunes(content) < e.cfg.FallbackThreshold {
		if full, ferr := e.fallback.Fetch(ctx, sourceURL); ferr != nil {
			e.logger.Warn("readability fallback failed, keeping short extract",
				slog.String("key", candidate.Key), slog.Any("error", ferr))
		} else if collapsed := text.CollapseWhitespace(full); collapsed != "" {
			content = collapsed
		}
	}

	return entity.ArticleContent{
		Text:      text.Truncate(content, e.cfg.MaxChars),
		Ready:     e.cfg.ExtractMode == ModeSummary,
		SourceURL: sourceURL,
	}, nil
}

func (e *Extractor) articleURL(key string) string {
	return fmt.Sprintf("%s/wiki/%s", e.cfg.BaseURL, url.PathEscape(key))
}

type extractsResponse struct {
	Query struct {
		Pages map[string]struct {
			PageID  int    `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// fetchExtract calls the action API extracts endpoint. In plain mode the
// explaintext flag makes Wikipedia do the markup stripping server-side.
func (e *Extractor) fetchExtract(ctx context.Context, key string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("format", "json")
	params.Set("redirects", "1")
	params.Set("titles", key)
	if e.cfg.ExtractMode == ModePlain {
		params.Set("explaintext", "1")
	}
	endpoint := fmt.Sprintf("%s/w/api.php?%s", e.cfg.BaseURL, params.Encode())

	body, err := e.get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var parsed extractsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", entity.NewError(entity.KindInternal, "decode extracts response", err)
	}
	for _, page := range parsed.Query.Pages {
		return page.Extract, nil
	}
	return "", nil
}

type pageSummaryResponse struct {
	Extract string `json:"extract"`
}

// fetchSummary calls the REST page-summary endpoint, which returns a short
// pre-written lead section.
func (e *Extractor) fetchSummary(ctx context.Context, key string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", e.cfg.BaseURL, url.PathEscape(key))

	body, err := e.get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var parsed pageSummaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", entity.NewError(entity.KindInternal, "decode page summary response", err)
	}
	return parsed.Extract, nil
}

func (e *Extractor) get(ctx context.Context, endpoint string) ([]byte, error) {
	result, err := e.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create extract request: %w", err)
		}
		req.Header.Set("User-Agent", e.cfg.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute extract request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("extract returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, entity.NewError(entity.KindUpstreamUnavailable, "wikipedia extract unavailable", err)
	}
	return result.([]byte), nil
}

// elements stripped from HTML extracts before text is taken. Tables cover
// infoboxes, the rest is chrome around article prose.
var strippedSelectors = []string{
	"script", "style", "table", "sup.reference",
	"ol.references", ".navbox", ".mw-editsection",
}

func stripMarkup(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}
	return doc.Text(), nil
}
