// Package entity defines the request-scoped value types that flow through
// the summarization pipeline, together with the error taxonomy shared by
// every layer. All values here live for a single request; nothing is shared
// across invocations.
package entity

import "time"

// DefaultSentenceCount is the sentence count used when the caller omits the
// length parameter or supplies something that does not parse as a positive
// integer.
const DefaultSentenceCount = 3

// SearchCandidate is a single entry returned by the search service.
// Description may be empty when the upstream API variant does not include
// descriptive snippets.
type SearchCandidate struct {
	// Key is the URL-safe article key (e.g. "Albert_Einstein").
	Key string
	// Title is the display title of the candidate article.
	Title string
	// Description is a short descriptive snippet, used to filter out
	// disambiguation pages.
	Description string
}

// ArticleContent is the output of the content-fetch stage.
type ArticleContent struct {
	// Text is the extracted article text, cleaned and truncated to the
	// configured budget.
	Text string
	// Ready reports that Text is a source-provided short extract that can be
	// returned to the caller as-is, bypassing the summarization stage.
	Ready bool
	// SourceURL is the canonical URL of the article the text came from.
	SourceURL string
}

// SummaryRequest carries the input for the summarization stage.
type SummaryRequest struct {
	// Text is the source text the model must summarize using only its own
	// content.
	Text string
	// Sentences is the requested sentence count. Always >= 1 by the time it
	// reaches a summarizer.
	Sentences int
}

// Summary is the final pipeline result.
//
// HTML is an HTML fragment (no <html> or <body> wrapper) produced by the
// completion service and passed through verbatim. The service performs no
// sanitization; the presentation layer owns that trust decision.
type Summary struct {
	HTML      string
	SourceURL string
}

// CoerceSentenceCount normalizes a requested sentence count to a positive
// integer, falling back to DefaultSentenceCount for zero or negative input.
func CoerceSentenceCount(n int) int {
	if n < 1 {
		return DefaultSentenceCount
	}
	return n
}

// CacheEntry is a memoized summary stored client-side, keyed by normalized
// topic and length.
type CacheEntry struct {
	Summary     string    `json:"summary"`
	OriginalURL string    `json:"originalUrl"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryItem is one past query in the client-side recency list.
type HistoryItem struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Length    int       `json:"length"`
	Timestamp time.Time `json:"timestamp"`
}
