package uxaudit

import "context"

// EmitFunc receives one incremental fragment of model output. Fragments
// arrive in emission order; concatenating them reconstructs the full
// answer. Returning an error stops the upstream read loop.
type EmitFunc func(delta string) error

// StreamOptions carries per-request overrides for a Streamer. Zero
// values fall back to the defaults the adapter was constructed with.
type StreamOptions struct {
	// Model overrides the adapter's default model name.
	Model string

	// Key is the request-supplied credential for providers that need one.
	Key string
}

// Streamer turns a prompt into an ordered sequence of text deltas.
// Implementations adapt one provider's wire protocol; granularity
// (token, sentence, whole answer) is the provider's choice, but each
// fragment is passed to emit exactly once and in order.
//
// A missing required credential is reported with EINVALID before any
// upstream call. A non-success upstream response is reported as an
// *UpstreamError carrying the status code and raw body.
type Streamer interface {
	Stream(ctx context.Context, prompt string, opts StreamOptions, emit EmitFunc) error
}
