// Package summarizer provides AI-powered summary generation backends. It
// includes adapters for the Groq API (OpenAI-compatible) and Anthropic's
// Claude API, both wrapped in circuit breakers and instrumented with
// Prometheus metrics.
package summarizer

import (
	"fmt"
	"os"
	"time"
)

// Supported providers.
const (
	ProviderGroq   = "groq"
	ProviderClaude = "claude"
	// ProviderNoop echoes the input back. Useful for development and tests
	// where no API key is available.
	ProviderNoop = "noop"
)

// DefaultGroqBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// Config holds the settings for a summarizer backend.
type Config struct {
	// Provider selects the backend: groq, claude, or noop.
	Provider string

	// APIKey authenticates against the selected provider. Required unless
	// the provider is noop.
	APIKey string

	// BaseURL overrides the API endpoint. Only used by the groq provider.
	BaseURL string

	// Model is the provider-specific model identifier.
	Model string

	// Temperature controls completion randomness.
	Temperature float32

	// TokensPerSentence sizes the completion token budget relative to the
	// requested sentence count.
	TokensPerSentence int

	// MinTokens is the floor of the completion token budget.
	MinTokens int

	// Timeout bounds a single completion call.
	Timeout time.Duration
}

// DefaultConfig returns defaults for the given provider.
func DefaultConfig(provider string) Config {
	cfg := Config{
		Provider:          provider,
		Temperature:       0.4,
		TokensPerSentence: 120,
		MinTokens:         256,
		Timeout:           60 * time.Second,
	}
	switch provider {
	case ProviderGroq:
		cfg.BaseURL = DefaultGroqBaseURL
		cfg.Model = "llama-3.3-70b-versatile"
	case ProviderClaude:
		cfg.Model = "claude-3-5-haiku-latest"
	}
	return cfg
}

// Validate checks the configuration, failing closed on anything that would
// produce broken API calls.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGroq, ProviderClaude:
		if c.APIKey == "" {
			return fmt.Errorf("api key required for provider %q", c.Provider)
		}
		if c.Model == "" {
			return fmt.Errorf("model cannot be empty")
		}
	case ProviderNoop:
		return nil
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Provider == ProviderGroq && c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.TokensPerSentence < 1 {
		return fmt.Errorf("tokens per sentence must be positive, got %d", c.TokensPerSentence)
	}
	if c.MinTokens < 1 {
		return fmt.Errorf("min tokens must be positive, got %d", c.MinTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadConfigFromEnv loads configuration from environment variables,
// falling back to provider defaults and validating the result.
//
// Environment variables:
//   - SUMMARIZER_PROVIDER: groq | claude | noop (default: groq)
//   - GROQ_API_KEY / ANTHROPIC_API_KEY: key for the selected provider
//   - SUMMARIZER_MODEL: model identifier (provider-specific default)
//   - SUMMARIZER_BASE_URL: endpoint override, groq only
//   - SUMMARIZER_TIMEOUT: per-call timeout (default: 60s)
func LoadConfigFromEnv() (Config, error) {
	provider := os.Getenv("SUMMARIZER_PROVIDER")
	if provider == "" {
		provider = ProviderGroq
	}
	cfg := DefaultConfig(provider)

	switch provider {
	case ProviderGroq:
		cfg.APIKey = os.Getenv("GROQ_API_KEY")
	case ProviderClaude:
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if v := os.Getenv("SUMMARIZER_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SUMMARIZER_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SUMMARIZER_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SUMMARIZER_TIMEOUT: %w (expected format: '60s')", err)
		}
		cfg.Timeout = parsed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("summarizer configuration invalid: %w", err)
	}
	return cfg, nil
}
