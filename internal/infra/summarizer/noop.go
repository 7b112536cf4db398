package summarizer

import (
	"context"
	"html"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/utils/text"
)

// Noop echoes a truncated slice of the input back as an escaped paragraph.
// Used in development and tests where no completion provider is configured.
type Noop struct{}

// NewNoop creates a Noop summarizer.
func NewNoop() *Noop {
	return &Noop{}
}

// Summarize returns the start of the input wrapped in a paragraph tag. The
// length scales with the requested sentence count so output shape roughly
// tracks real summaries.
func (n *Noop) Summarize(_ context.Context, req entity.SummaryRequest) (string, error) {
	const runesPerSentence = 160
	snippet := text.Truncate(req.Text, req.Sentences*runesPerSentence)
	if snippet == "" {
		return "", entity.NewError(entity.KindEmptyResponse, "completion service returned no content", nil)
	}
	return "<p>" + html.EscapeString(snippet) + "</p>", nil
}
