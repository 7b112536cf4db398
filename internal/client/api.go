package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/adam4056/QuickWiki/internal/domain/entity"
)

// SummaryAPI is the remote summarize operation the client depends on.
type SummaryAPI interface {
	Summarize(ctx context.Context, topic string, sentences int) (entity.Summary, error)
}

// HTTPAPI calls the summarize endpoint of a running server and translates
// the error contract back into pipeline errors.
type HTTPAPI struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAPI creates an HTTPAPI for the server at baseURL.
func NewHTTPAPI(baseURL string, timeout time.Duration) *HTTPAPI {
	return &HTTPAPI{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type summarizeResponse struct {
	Summary     string `json:"summary"`
	OriginalURL string `json:"originalUrl"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Detail     string `json:"detail"`
	RetryAfter int    `json:"retryAfter"`
}

// Summarize performs GET /api/summarize against the server.
func (a *HTTPAPI) Summarize(ctx context.Context, topic string, sentences int) (entity.Summary, error) {
	params := url.Values{}
	params.Set("topic", topic)
	params.Set("length", strconv.Itoa(sentences))
	endpoint := fmt.Sprintf("%s/api/summarize?%s", a.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entity.Summary{}, fmt.Errorf("create summarize request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return entity.Summary{}, entity.NewError(entity.KindUpstreamUnavailable, "summarize service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Summary{}, a.decodeError(resp)
	}

	var body summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return entity.Summary{}, entity.NewError(entity.KindInternal, "decode summarize response", err)
	}
	return entity.Summary{HTML: body.Summary, SourceURL: body.OriginalURL}, nil
}

// decodeError rebuilds a classified error from the response status and the
// uniform error body.
func (a *HTTPAPI) decodeError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error == "" {
		body.Error = fmt.Sprintf("summarize service returned status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return entity.NewError(entity.KindBadRequest, body.Error, nil)
	case http.StatusNotFound:
		return entity.NewError(entity.KindNotFound, body.Error, nil)
	case http.StatusTooManyRequests:
		retryAfter := body.RetryAfter
		if retryAfter < 1 {
			retryAfter, _ = strconv.Atoi(resp.Header.Get("Retry-After"))
		}
		return entity.NewRateLimited(retryAfter, nil)
	case http.StatusServiceUnavailable:
		return entity.NewError(entity.KindUpstreamUnavailable, body.Error, nil)
	default:
		kind := entity.ErrorKind(body.Detail)
		switch kind {
		case entity.KindContentUnavailable, entity.KindEmptyResponse:
			return entity.NewError(kind, body.Error, nil)
		}
		return entity.NewError(entity.KindInternal, body.Error, nil)
	}
}
