// Package ollama streams completions from a local Ollama generate API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
	"github.com/pseuD0sgnf/my-ux-audit/stream"
)

// Defaults for a stock local Ollama install.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.1:8b"

	// DefaultTimeout bounds the whole generate call. Generation is slow,
	// so this is deliberately generous.
	DefaultTimeout = 120 * time.Second
)

// foreignModelPrefixes mark model names belonging to hosted provider
// families. A local Ollama instance cannot serve them, so such names
// are replaced with the adapter's default model instead of being
// forwarded upstream.
var foreignModelPrefixes = []string{"gpt-", "gemini-", "claude-", "o1-", "o3-", "o4-"}

// Ensure Streamer implements uxaudit.Streamer at compile time.
var _ uxaudit.Streamer = (*Streamer)(nil)

// Streamer streams generated text from an Ollama /api/generate
// endpoint. The upstream emits one JSON object per line; unparseable
// lines are dropped, never fatal.
type Streamer struct {
	client  *http.Client
	baseURL string
	model   string
}

// Option configures a Streamer.
type Option func(*Streamer)

// WithBaseURL points the adapter at a non-default Ollama address.
func WithBaseURL(u string) Option {
	return func(s *Streamer) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithModel sets the default model used when the request supplies none
// (or supplies a foreign-family model name).
func WithModel(m string) Option {
	return func(s *Streamer) {
		s.model = m
	}
}

// WithHTTPClient substitutes the HTTP client, e.g. to adjust timeouts.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Streamer) {
		s.client = c
	}
}

// NewStreamer creates a new Streamer.
func NewStreamer(opts ...Option) *Streamer {
	s := &Streamer{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Stream sends the prompt to the generate endpoint and emits each
// incremental response fragment in arrival order.
func (s *Streamer) Stream(ctx context.Context, prompt string, opts uxaudit.StreamOptions, emit uxaudit.EmitFunc) error {
	body, err := json.Marshal(generateRequest{
		Model:  s.resolveModel(opts.Model),
		Prompt: prompt,
		Stream: true,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return uxaudit.Errorf(uxaudit.EUPSTREAM, "ollama request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return &uxaudit.UpstreamError{StatusCode: resp.StatusCode, Body: b}
	}

	return stream.Lines(resp.Body, func(line []byte) error {
		var chunk generateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return nil // malformed line, drop it
		}
		if chunk.Response != "" {
			if err := emit(chunk.Response); err != nil {
				return err
			}
		}
		if chunk.Done {
			return stream.Stop
		}
		return nil
	})
}

// resolveModel picks the model name to send upstream: the request's
// override unless it is empty or belongs to a foreign provider family.
func (s *Streamer) resolveModel(override string) string {
	if override == "" {
		return s.model
	}
	lower := strings.ToLower(override)
	for _, prefix := range foreignModelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return s.model
		}
	}
	return override
}
