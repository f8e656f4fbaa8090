package feed

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Accept headers for the two kinds of upstream documents we request.
const (
	acceptFeed = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.7"
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Remote bodies are untrusted; cap how much of them we read.
const maxBodyBytes = 5 << 20

// Response captures the parts of an upstream reply the pipeline cares about.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Fetcher performs bounded-time HTTP requests against remote hosts. Every
// request carries its own deadline; a single failed attempt is final, there
// are no retries.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

func (f *Fetcher) Get(ctx context.Context, url, accept string) (*Response, error) {
	return f.do(ctx, http.MethodGet, url, accept)
}

func (f *Fetcher) Head(ctx context.Context, url string) (*Response, error) {
	return f.do(ctx, http.MethodHead, url, "")
}

func (f *Fetcher) do(ctx context.Context, method, url, accept string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body []byte
	if method != http.MethodHead {
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}
