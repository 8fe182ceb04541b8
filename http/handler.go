package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
	"github.com/pseuD0sgnf/my-ux-audit/stream"
)

// deltaBuffer bounds the in-flight deltas between the upstream read
// loop and the outbound writer. A full buffer suspends the upstream
// read, so a slow client throttles the provider read rate.
const deltaBuffer = 16

// AuditHandler dispatches audit requests: it resolves the input markup,
// extracts signals, builds the prompt, and streams the selected
// provider's answer back as newline-delimited delta records.
type AuditHandler struct {
	Fetcher   uxaudit.Fetcher
	Extractor uxaudit.Extractor
	Streamers map[uxaudit.Provider]uxaudit.Streamer
	Logger    *slog.Logger
}

// ServeHTTP handles POST /api/audit.
func (h *AuditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, uxaudit.Errorf(uxaudit.EINVALID, "method not allowed"), http.StatusMethodNotAllowed)
		return
	}

	var req uxaudit.AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, uxaudit.Errorf(uxaudit.EINVALID, "invalid request body"), 0)
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(w, err, 0)
		return
	}

	st, ok := h.Streamers[req.Provider]
	if !ok {
		h.writeError(w, uxaudit.Errorf(uxaudit.EINVALID, "provider %q not configured", req.Provider), 0)
		return
	}

	html := h.resolveInput(r.Context(), &req)
	if strings.TrimSpace(html) == "" {
		h.writeError(w, uxaudit.Errorf(uxaudit.EINVALID, "no usable HTML for audit"), 0)
		return
	}

	signals := h.Extractor.Extract(html)
	prompt := uxaudit.BuildPrompt(html, signals)

	h.stream(w, r, st, req.Provider, prompt, uxaudit.StreamOptions{Model: req.Model, Key: req.Key})
}

// resolveInput returns the markup to audit: inline HTML when given,
// otherwise one fetch of the URL. Fetch failures degrade to empty
// markup; the caller turns that into an input error.
func (h *AuditHandler) resolveInput(ctx context.Context, req *uxaudit.AuditRequest) string {
	if req.HTML != "" {
		return req.HTML
	}
	if req.URL == "" {
		return ""
	}

	html, err := h.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		h.Logger.Warn("page fetch failed", "url", req.URL, "error", err)
		return ""
	}
	return html
}

// stream runs the provider read loop and the outbound writer as a
// producer/consumer pair over a bounded channel. The response status is
// decided by the first delta: until one arrives, a failure can still
// choose its own status code.
func (h *AuditHandler) stream(w http.ResponseWriter, r *http.Request, st uxaudit.Streamer, provider uxaudit.Provider, prompt string, opts uxaudit.StreamOptions) {
	begin := time.Now()

	deltas := make(chan string, deltaBuffer)
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		defer close(deltas)
		return st.Stream(ctx, prompt, opts, func(delta string) error {
			select {
			case deltas <- delta:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	var dw *stream.DeltaWriter
	g.Go(func() error {
		for delta := range deltas {
			if dw == nil {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				dw = stream.NewDeltaWriter(w)
			}
			if err := dw.Emit(delta); err != nil {
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	emitted := 0
	if dw != nil {
		emitted = dw.Emitted()
	}

	if err != nil && emitted == 0 {
		h.writeError(w, err, 0)
		return
	}
	if err != nil {
		// The stream is already underway; nothing meaningful can be
		// sent to the client beyond stopping.
		h.Logger.Warn("audit stream aborted",
			"provider", provider,
			"deltas", emitted,
			"error", err,
		)
		return
	}

	h.Logger.Info("audit streamed",
		"provider", provider,
		"deltas", emitted,
		"duration", time.Since(begin),
	)
}

// writeError shapes a pre-stream failure. Upstream failures forward the
// upstream's status code and raw body verbatim; application errors map
// EINVALID to 400, everything else to 500.
func (h *AuditHandler) writeError(w http.ResponseWriter, err error, status int) {
	var ue *uxaudit.UpstreamError
	if errors.As(err, &ue) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(ue.StatusCode)
		_, _ = w.Write(ue.Body)
		return
	}

	if status == 0 {
		switch uxaudit.ErrorCode(err) {
		case uxaudit.EINVALID:
			status = http.StatusBadRequest
		case uxaudit.ENOTFOUND:
			status = http.StatusNotFound
		default:
			status = http.StatusInternalServerError
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(stream.ErrorRecord{Error: uxaudit.ErrorMessage(err)})
}
