// Package circuitbreaker wraps github.com/sony/gobreaker for the three
// upstream services the pipeline calls: search, extraction, and completion.
// Breakers fail fast when an upstream is persistently down; they never
// re-attempt a request, which keeps the pipeline's no-retry contract intact.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the tunables for a single circuit breaker.
type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests is the number of probe requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state after which
	// success/failure counts are cleared.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit.
	FailureThreshold float64

	// MinRequests is the minimum number of observed requests before the
	// ratio is evaluated.
	MinRequests uint32
}

// SearchAPIConfig returns the breaker configuration for the search service.
func SearchAPIConfig() Config {
	return Config{
		Name:             "wiki-search",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ExtractAPIConfig returns the breaker configuration for the extraction
// service. Slightly more tolerant because individual articles can fail
// without the service being down.
func ExtractAPIConfig() Config {
	return Config{
		Name:             "wiki-extract",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      5,
	}
}

// CompletionAPIConfig returns the breaker configuration for the completion
// service. Longer open timeout because provider outages tend to last.
func CompletionAPIConfig() Config {
	return Config{
		Name:             "completion-api",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// CircuitBreaker wraps gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker from the given configuration. State changes
// are logged so operators can see an upstream being fenced off.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{breaker: gobreaker.NewCircuitBreaker(settings), name: cfg.Name}
}

// Execute runs fn through the breaker. When the circuit is open it returns
// gobreaker.ErrOpenState immediately without invoking fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string { return cb.name }
