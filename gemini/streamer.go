// Package gemini adapts a one-shot content-generation API (Gemini
// generateContent wire shape) to the streaming delta contract.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
)

// Defaults for the hosted API.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 120 * time.Second
)

// Ensure Streamer implements uxaudit.Streamer at compile time.
var _ uxaudit.Streamer = (*Streamer)(nil)

// Streamer performs a single non-streaming generateContent call and
// exposes the whole answer as exactly one delta, so downstream
// consumers never special-case the one-shot provider.
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

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Stream performs the one-shot call and emits a single delta. A missing
// API key fails with EINVALID before any upstream call; a non-success
// upstream status is forwarded verbatim as an UpstreamError. When the
// response body does not decode into the expected candidate/parts
// shape, or yields no text, the raw body is emitted as the payload.
func (s *Streamer) Stream(ctx context.Context, prompt string, opts uxaudit.StreamOptions, emit uxaudit.EmitFunc) error {
	key := opts.Key
	if key == "" {
		key = s.key
	}
	if key == "" {
		return uxaudit.Errorf(uxaudit.EINVALID, "API key required for the content provider")
	}

	model := opts.Model
	if model == "" {
		model = s.model
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.baseURL, url.PathEscape(model), url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return uxaudit.Errorf(uxaudit.EUPSTREAM, "content generation request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return uxaudit.Errorf(uxaudit.EUPSTREAM, "reading content generation response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &uxaudit.UpstreamError{StatusCode: resp.StatusCode, Body: raw}
	}

	return emit(extractText(raw))
}

// extractText concatenates the text parts of the first candidate,
// falling back to the raw body when the shape is unexpected or empty.
func extractText(raw []byte) string {
	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil || len(decoded.Candidates) == 0 {
		return string(raw)
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return string(raw)
	}
	return sb.String()
}
