// Package slog provides logging decorators over the uxaudit domain
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
)

// Ensure Streamer implements uxaudit.Streamer at compile time.
var _ uxaudit.Streamer = (*Streamer)(nil)

// Streamer wraps a uxaudit.Streamer with structured logging of each
// upstream call: provider name, delta count, duration, outcome.
type Streamer struct {
	next   uxaudit.Streamer
	name   string
	logger *slog.Logger
}

// NewStreamer creates a new logging Streamer. name labels the wrapped
// provider in log output.
func NewStreamer(next uxaudit.Streamer, name string, logger *slog.Logger) *Streamer {
	return &Streamer{next: next, name: name, logger: logger}
}

// Stream delegates to the wrapped streamer, counting emitted deltas.
func (s *Streamer) Stream(ctx context.Context, prompt string, opts uxaudit.StreamOptions, emit uxaudit.EmitFunc) error {
	begin := time.Now()
	deltas := 0

	err := s.next.Stream(ctx, prompt, opts, func(delta string) error {
		deltas++
		return emit(delta)
	})

	if err != nil {
		s.logger.Warn("provider stream failed",
			"provider", s.name,
			"deltas", deltas,
			"duration", time.Since(begin),
			"error", err,
		)
		return err
	}

	s.logger.Debug("provider stream complete",
		"provider", s.name,
		"deltas", deltas,
		"duration", time.Since(begin),
	)
	return nil
}
