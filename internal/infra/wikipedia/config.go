// Package wikipedia implements the search (resolver) and extraction
// (fetcher) clients against the Wikipedia APIs. Both clients run their
// outbound calls through a circuit breaker and surface failures in the
// pipeline's error taxonomy.
package wikipedia

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Extraction modes. The extracts API serves two content shapes; the REST
// page-summary endpoint serves a third that is already summarized.
const (
	// ModePlain requests plain-text extracts (explaintext).
	ModePlain = "plain"
	// ModeHTML requests marked-up extracts and cleans them locally.
	ModeHTML = "html"
	// ModeSummary requests the REST page summary, which is short enough to
	// be the final answer without a completion call.
	ModeSummary = "summary"
)

// Config holds the settings for both Wikipedia clients.
type Config struct {
	// BaseURL is the origin of the Wikipedia instance, e.g.
	// "https://en.wikipedia.org". Search, extraction, and article URLs are
	// derived from it.
	BaseURL string

	// SearchLimit is the number of candidates requested per search.
	SearchLimit int

	// ExtractMode selects the content shape: plain, html, or summary.
	ExtractMode string

	// MaxChars is the character budget applied to extracted text before it
	// is handed to the summarizer. Text over budget is truncated with an
	// ellipsis marker.
	MaxChars int

	// FallbackThreshold is the minimum extract length below which the
	// readability fallback fetches the full article page. Zero disables
	// the fallback check.
	FallbackThreshold int

	// Timeout bounds each outbound request.
	Timeout time.Duration

	// UserAgent identifies this service to the Wikipedia APIs, which
	// require a descriptive agent string.
	UserAgent string
}

// DefaultConfig returns production defaults: English Wikipedia, five
// candidates per search, plain-text extracts capped at 12000 characters.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://en.wikipedia.org",
		SearchLimit:       5,
		ExtractMode:       ModePlain,
		MaxChars:          12000,
		FallbackThreshold: 0,
		Timeout:           15 * time.Second,
		UserAgent:         "QuickWiki/1.0 (https://github.com/adam4056/QuickWiki)",
	}
}

// Validate checks the configuration, failing closed on anything that would
// produce broken requests.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if c.SearchLimit < 1 || c.SearchLimit > 50 {
		return fmt.Errorf("search limit must be between 1 and 50, got %d", c.SearchLimit)
	}
	switch c.ExtractMode {
	case ModePlain, ModeHTML, ModeSummary:
	default:
		return fmt.Errorf("extract mode must be plain, html, or summary, got %q", c.ExtractMode)
	}
	if c.MaxChars < 1000 || c.MaxChars > 50000 {
		return fmt.Errorf("max chars must be between 1000 and 50000, got %d", c.MaxChars)
	}
	if c.FallbackThreshold < 0 {
		return fmt.Errorf("fallback threshold must be non-negative, got %d", c.FallbackThreshold)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfigFromEnv loads configuration from environment variables,
// falling back to defaults and validating the result.
//
// Environment variables:
//   - WIKI_BASE_URL: Wikipedia origin (default: https://en.wikipedia.org)
//   - WIKI_SEARCH_LIMIT: candidates per search (default: 5)
//   - WIKI_EXTRACT_MODE: plain | html | summary (default: plain)
//   - WIKI_MAX_CHARS: extract character budget (default: 12000)
//   - WIKI_FALLBACK_THRESHOLD: readability fallback threshold (default: 0, disabled)
//   - WIKI_TIMEOUT: per-request timeout (default: 15s)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("WIKI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("WIKI_SEARCH_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WIKI_SEARCH_LIMIT: %w", err)
		}
		cfg.SearchLimit = parsed
	}
	if v := os.Getenv("WIKI_EXTRACT_MODE"); v != "" {
		cfg.ExtractMode = v
	}
	if v := os.Getenv("WIKI_MAX_CHARS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WIKI_MAX_CHARS: %w", err)
		}
		cfg.MaxChars = parsed
	}
	if v := os.Getenv("WIKI_FALLBACK_THRESHOLD"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WIKI_FALLBACK_THRESHOLD: %w", err)
		}
		cfg.FallbackThreshold = parsed
	}
	if v := os.Getenv("WIKI_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid WIKI_TIMEOUT: %w (expected format: '15s')", err)
		}
		cfg.Timeout = parsed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("wikipedia configuration invalid: %w", err)
	}
	return cfg, nil
}
