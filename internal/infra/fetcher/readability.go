package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/adam4056/QuickWiki/internal/resilience/circuitbreaker"
)

// ReadabilityFetcher downloads a page and extracts its readable text.
// Safe for concurrent use.
type ReadabilityFetcher struct {
	cfg     Config
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

// NewReadabilityFetcher creates a fetcher with redirect limiting and its
// own circuit breaker.
func NewReadabilityFetcher(cfg Config) *ReadabilityFetcher {
	f := &ReadabilityFetcher{
		cfg: cfg,
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name:             "page-fetch",
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      5,
		}),
	}
	f.client = &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return nil
		},
	}
	return f
}

// Fetch downloads pageURL and returns its extracted text content.
func (f *ReadabilityFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, pageURL)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create page request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}
	if int64(len(body)) > f.cfg.MaxBodySize {
		return "", fmt.Errorf("page body exceeds %d bytes", f.cfg.MaxBodySize)
	}

	// Redirects may have moved us; readability resolves relative links
	// against the final URL.
	finalURL, _ := url.Parse(pageURL)
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(body), finalURL)
	if err != nil {
		return "", fmt.Errorf("extract readable content: %w", err)
	}
	if article.TextContent == "" {
		return "", fmt.Errorf("no readable content in page")
	}
	return article.TextContent, nil
}
