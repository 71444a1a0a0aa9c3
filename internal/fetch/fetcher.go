package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"jobfeed/internal/domain"
)

type Fetcher struct {
	url     string
	hc      *http.Client
	limiter *Limiter
}

func New(url string, limiter *Limiter) *Fetcher {
	return &Fetcher{
		url:     url,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (f *Fetcher) URL() string { return f.url }

// Fetch issues a single blocking GET and decodes the JSON body.
// No retries; the transport timeout is the only deadline.
func (f *Fetcher) Fetch(ctx context.Context) (*domain.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &NetworkError{URL: f.url, Err: err}
	}
	req.Header.Set("User-Agent", "jobfeed/1.0 (+local)")

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &NetworkError{URL: f.url, Err: err}
	}

	res, err := f.hc.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: f.url, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, &StatusError{URL: f.url, Code: res.StatusCode}
	}

	var feed domain.Feed
	if err := json.NewDecoder(res.Body).Decode(&feed); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &feed, nil
}
