// Package http provides the inbound audit API and an HTTP-based
// implementation of uxaudit.Fetcher for retrieving target pages.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
)

// UserAgent identifies page fetches to target sites.
const UserAgent = "uxaudit/1.0 (automated usability analysis)"

// DefaultFetchTimeout is the default timeout for target page requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRatePerHost limits fetches per target host per second.
const DefaultRatePerHost = 1.0

// Ensure Fetcher implements uxaudit.Fetcher at compile time.
var _ uxaudit.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML from target URLs with one plain GET per
// call: no JavaScript rendering, no retries. A token-bucket limiter per
// host keeps repeat audits of the same site polite.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	rps      float64
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRatePerHost sets the per-host fetch rate limit in requests per
// second. Defaults to DefaultRatePerHost.
func WithRatePerHost(rps float64) FetcherOption {
	return func(f *Fetcher) {
		f.rps = rps
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		rps:      DefaultRatePerHost,
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Each host gets
// its own rate limiter with a burst of 1.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", uxaudit.Errorf(uxaudit.EINVALID, "invalid target URL: %v", err)
	}

	if err := f.wait(ctx, u.Host); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// wait blocks until the host's rate limit allows another fetch.
func (f *Fetcher) wait(ctx context.Context, host string) error {
	f.mu.Lock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(f.rps), 1)
		f.limiters[host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}
