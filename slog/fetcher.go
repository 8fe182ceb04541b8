package slog

import (
	"context"
	"log/slog"
	"time"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
)

// Ensure Fetcher implements uxaudit.Fetcher at compile time.
var _ uxaudit.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a uxaudit.Fetcher with debug logging of page fetches.
type Fetcher struct {
	next   uxaudit.Fetcher
	logger *slog.Logger
}

// NewFetcher creates a new logging Fetcher.
func NewFetcher(next uxaudit.Fetcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()

	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Debug("page fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}

	f.logger.Debug("page fetched",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}
