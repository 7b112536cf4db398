package summarizer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

// Summarizer generates an HTML summary fragment from article text.
type Summarizer interface {
	Summarize(ctx context.Context, req entity.SummaryRequest) (string, error)
}

// New creates the summarizer selected by cfg.Provider.
func New(cfg Config, logger *slog.Logger) (Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderGroq:
		return NewGroq(cfg, logger), nil
	case ProviderClaude:
		return NewClaude(cfg, logger), nil
	case ProviderNoop:
		return NewNoop(), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// buildPrompt constructs the completion prompt. The model is told to stay
// inside the supplied text and to answer with a bare HTML fragment so the
// output can be embedded without post-processing.
func buildPrompt(req entity.SummaryRequest) string {
	return fmt.Sprintf(
		"Summarize the following text in exactly %d sentences. "+
			"Use only information contained in the text. "+
			"Format the answer as a clean HTML fragment using only <p>, <b>, and <i> tags, "+
			"without <html> or <body> tags and without any commentary before or after the summary.\n\n"+
			"Text:\n%s",
		req.Sentences, req.Text)
}

// tokenBudget sizes the completion response to the requested sentence count.
func (c Config) tokenBudget(sentences int) int {
	budget := sentences * c.TokensPerSentence
	if budget < c.MinTokens {
		budget = c.MinTokens
	}
	return budget
}
