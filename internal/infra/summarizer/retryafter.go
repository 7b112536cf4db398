package summarizer

import (
	"math"
	"regexp"
	"strconv"
)

// retryAfterPattern matches the wait hint Groq embeds in 429 error messages,
// e.g. "Rate limit reached ... Please try again in 7.066s."
var retryAfterPattern = regexp.MustCompile(`(?i)try again in ([0-9]+(?:\.[0-9]+)?)s`)

// parseRetryAfter extracts a retry-after hint in whole seconds from an error
// message. Returns 0 when no hint is present; fractional waits round up.
func parseRetryAfter(message string) int {
	m := retryAfterPattern.FindStringSubmatch(message)
	if m == nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return int(math.Ceil(seconds))
}
