package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent looks like a desktop browser; the FAO site answers 403 to
// obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

const maxBodyBytes = 8 << 20

// ErrStatus is wrapped by FetchArticle when the page answers with a non-200 status.
var ErrStatus = errors.New("unexpected HTTP status")

// Response is a fetched page.
type Response struct {
	StatusCode int
	Body       string
}

// Fetcher downloads pages with browser-like headers.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher makes a fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get fetches url. Only transport failures are errors; any HTTP status is
// returned to the caller.
func (f *Fetcher) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading page: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// FetchArticle downloads url and extracts its title and main body.
func (f *Fetcher) FetchArticle(ctx context.Context, url string) (Article, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return Article{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	return ParseArticle(resp.Body), nil
}
