package summary

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
	"github.com/adam4056/QuickWiki/internal/handler/http/respond"
)

// Service is the pipeline entry point the handler depends on.
type Service interface {
	Summarize(ctx context.Context, topic string, sentences int) (entity.Summary, error)
}

// Handler serves GET /api/summarize.
type Handler struct {
	service Service
}

// NewHandler creates a Handler backed by the given service.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Summarize handles GET /api/summarize?topic=...&length=N.
//
// topic is required. length is optional; anything that does not parse as a
// positive integer silently falls back to the default sentence count. The
// response is JSON unless the caller asks for HTML via format=html or an
// Accept: text/html header, in which case the bare fragment is returned.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		respond.JSON(w, http.StatusMethodNotAllowed, respond.ErrorBody{Error: "method not allowed"})
		return
	}

	topic := r.URL.Query().Get("topic")
	if strings.TrimSpace(topic) == "" {
		respond.Error(w, entity.NewError(entity.KindBadRequest, "topic is required", nil))
		return
	}

	sentences := entity.DefaultSentenceCount
	if raw := r.URL.Query().Get("length"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			sentences = entity.CoerceSentenceCount(parsed)
		}
	}

	result, err := h.service.Summarize(r.Context(), topic, sentences)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if wantsHTML(r) {
		respond.HTMLFragment(w, result.HTML)
		return
	}
	respond.JSON(w, http.StatusOK, Response{
		Summary:     result.HTML,
		OriginalURL: result.SourceURL,
	})
}

func wantsHTML(r *http.Request) bool {
	if r.URL.Query().Get("format") == "html" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}
