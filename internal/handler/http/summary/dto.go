// Package summary exposes the summarization pipeline over HTTP.
package summary

// Response is the JSON body of a successful summarize call.
type Response struct {
	// Summary is the generated HTML fragment.
	Summary string `json:"summary"`
	// OriginalURL points at the article the summary was generated from.
	OriginalURL string `json:"originalUrl"`
}
