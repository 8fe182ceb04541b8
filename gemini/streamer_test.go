package gemini_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
	"github.com/pseuD0sgnf/my-ux-audit/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, s uxaudit.Streamer, opts uxaudit.StreamOptions) ([]string, error) {
	t.Helper()
	var got []string
	err := s.Stream(context.Background(), "audit this page", opts, func(delta string) error {
		got = append(got, delta)
		return nil
	})
	return got, err
}

func TestStreamer_Stream(t *testing.T) {
	t.Parallel()

	t.Run("concatenates first candidate parts into one delta", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
			assert.Equal(t, "k-test", r.URL.Query().Get("key"))

			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"## Findings\n"},{"text":"1. Missing labels"}]}},{"content":{"parts":[{"text":"ignored second candidate"}]}}]}`))
		}))
		defer server.Close()

		s := gemini.NewStreamer(gemini.WithBaseURL(server.URL), gemini.WithKey("k-test"))

		got, err := collect(t, s, uxaudit.StreamOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"## Findings\n1. Missing labels"}, got)
	})

	t.Run("falls back to the raw body when extraction yields nothing", func(t *testing.T) {
		t.Parallel()

		for name, body := range map[string]string{
			"not json":      "plain text answer",
			"no candidates": `{"candidates":[]}`,
			"no text parts": `{"candidates":[{"content":{"parts":[]}}]}`,
			"empty text":    `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
			"foreign shape": `{"output":"different API"}`,
		} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(body))
				}))
				defer server.Close()

				s := gemini.NewStreamer(gemini.WithBaseURL(server.URL), gemini.WithKey("k"))

				got, err := collect(t, s, uxaudit.StreamOptions{})

				require.NoError(t, err)
				assert.Equal(t, []string{body}, got)
			})
		}
	})

	t.Run("missing key fails before any upstream call", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		s := gemini.NewStreamer(gemini.WithBaseURL(server.URL))

		_, err := collect(t, s, uxaudit.StreamOptions{})

		require.Error(t, err)
		assert.Equal(t, uxaudit.EINVALID, uxaudit.ErrorCode(err))
		assert.Zero(t, calls.Load())
	})

	t.Run("non-success status is forwarded verbatim", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"status":"RESOURCE_EXHAUSTED"}}`))
		}))
		defer server.Close()

		s := gemini.NewStreamer(gemini.WithBaseURL(server.URL), gemini.WithKey("k"))

		got, err := collect(t, s, uxaudit.StreamOptions{})

		var ue *uxaudit.UpstreamError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
		assert.Equal(t, `{"error":{"status":"RESOURCE_EXHAUSTED"}}`, string(ue.Body))
		assert.Empty(t, got)
	})

	t.Run("request model override changes the endpoint path", func(t *testing.T) {
		t.Parallel()

		var path string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
		}))
		defer server.Close()

		s := gemini.NewStreamer(gemini.WithBaseURL(server.URL), gemini.WithKey("k"))

		_, err := collect(t, s, uxaudit.StreamOptions{Model: "gemini-2.5-pro"})

		require.NoError(t, err)
		assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", path)
	})
}
