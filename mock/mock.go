// Package mock provides function-field mock implementations of the
// uxaudit domain interfaces for use in tests.
package mock

import (
	"context"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
)

var _ uxaudit.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of uxaudit.Extractor.
type Extractor struct {
	ExtractFn func(html string) uxaudit.Signals
}

func (e *Extractor) Extract(html string) uxaudit.Signals {
	return e.ExtractFn(html)
}

var _ uxaudit.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of uxaudit.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ uxaudit.Streamer = (*Streamer)(nil)

// Streamer is a mock implementation of uxaudit.Streamer.
type Streamer struct {
	StreamFn func(ctx context.Context, prompt string, opts uxaudit.StreamOptions, emit uxaudit.EmitFunc) error
}

func (s *Streamer) Stream(ctx context.Context, prompt string, opts uxaudit.StreamOptions, emit uxaudit.EmitFunc) error {
	return s.StreamFn(ctx, prompt, opts, emit)
}
