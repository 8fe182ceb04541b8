// Package openai streams completions from an OpenAI-compatible
// chat-completions API over Server-Sent Events.
package openai

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

// Defaults for the hosted OpenAI API. Any chat-completions-compatible
// gateway works via WithBaseURL.
const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// doneSentinel is the end-of-stream marker frame. It is a control
// signal, not a data record.
const doneSentinel = "[DONE]"

// Ensure Streamer implements uxaudit.Streamer at compile time.
var _ uxaudit.Streamer = (*Streamer)(nil)

// Streamer streams chat-completions deltas. Upstream frames are SSE
// blocks separated by blank lines; each data frame carries a JSON chunk
// whose choices[0].delta.content holds the text fragment.
type Streamer struct {
	client  *http.Client
	baseURL string
	model   string
	key     string
}

// Option configures a Streamer.
type Option func(*Streamer)

// WithBaseURL points the adapter at a non-default API address.
func WithBaseURL(u string) Option {
	return func(s *Streamer) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithModel sets the default model used when the request supplies none.
func WithModel(m string) Option {
	return func(s *Streamer) {
		s.model = m
	}
}

// WithKey sets the default API key used when the request supplies none.
func WithKey(k string) Option {
	return func(s *Streamer) {
		s.key = k
	}
}

// WithHTTPClient substitutes the HTTP client.
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

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream sends the prompt as a single user message with streaming
// enabled and emits each content delta in arrival order. A missing API
// key fails with EINVALID before any upstream call.
func (s *Streamer) Stream(ctx context.Context, prompt string, opts uxaudit.StreamOptions, emit uxaudit.EmitFunc) error {
	key := opts.Key
	if key == "" {
		key = s.key
	}
	if key == "" {
		return uxaudit.Errorf(uxaudit.EINVALID, "API key required for the chat provider")
	}

	model := opts.Model
	if model == "" {
		model = s.model
	}

	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   true,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := s.client.Do(req)
	if err != nil {
		return uxaudit.Errorf(uxaudit.EUPSTREAM, "chat completions request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return &uxaudit.UpstreamError{StatusCode: resp.StatusCode, Body: b}
	}

	return stream.SSEFrames(resp.Body, func(data []byte) error {
		if string(data) == doneSentinel {
			return stream.Stop
		}
		var chunk chatChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			return nil // malformed frame, drop it
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			return nil
		}
		return emit(chunk.Choices[0].Delta.Content)
	})
}
