package uxaudit

import "context"

// Fetcher retrieves raw HTML from a target page URL.
type Fetcher interface {
	// Fetch performs a single GET of the URL and returns the body text.
	// One attempt, no retries. The context controls timeout and
	// cancellation. Callers treat any failure as "no usable HTML"
	// rather than a crash.
	Fetch(ctx context.Context, url string) (html string, err error)
}
