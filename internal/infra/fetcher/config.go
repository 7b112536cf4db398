// Package fetcher downloads full article pages and extracts readable text
// with the Mozilla Readability algorithm. It backs up the extracts API when
// an article's extract is too short to summarize well.
package fetcher

import (
	"fmt"
	"time"
)

// Config holds the settings for the readability fetcher.
type Config struct {
	// Timeout bounds a single page download.
	Timeout time.Duration

	// MaxBodySize is the largest response body accepted, in bytes.
	MaxBodySize int64

	// MaxRedirects caps the redirect chain length.
	MaxRedirects int

	// UserAgent identifies this service to the origin.
	UserAgent string
}

// DefaultConfig returns production defaults: 20s timeout, 10MB body cap,
// at most 5 redirects.
func DefaultConfig() Config {
	return Config{
		Timeout:      20 * time.Second,
		MaxBodySize:  10 * 1024 * 1024,
		MaxRedirects: 5,
		UserAgent:    "QuickWiki/1.0 (https://github.com/adam4056/QuickWiki)",
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must be non-negative, got %d", c.MaxRedirects)
	}
	return nil
}
