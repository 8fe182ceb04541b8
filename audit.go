package uxaudit

// Provider identifies which backend model API serves an audit.
type Provider string

// Supported providers.
const (
	// ProviderLocal is a local generate-style API (line-delimited JSON
	// streaming, no credentials).
	ProviderLocal Provider = "local"

	// ProviderChat is a chat-completions API streaming Server-Sent
	// Events frames.
	ProviderChat Provider = "chat"

	// ProviderContent is a one-shot content-generation API that returns
	// the whole answer in a single JSON document.
	ProviderContent Provider = "content"
)

// AuditRequest is the inbound request for a single page audit. Exactly
// one audit happens per request; nothing survives past the response
// stream closing.
type AuditRequest struct {
	// URL of the page to fetch when HTML is not supplied inline.
	URL string `json:"url"`

	// HTML is the raw markup to audit; takes precedence over URL.
	HTML string `json:"html"`

	// Provider selects the backend model API.
	Provider Provider `json:"provider"`

	// Key is a credential for providers that require one. Only
	// meaningful for non-local providers.
	Key string `json:"key"`

	// Model optionally overrides the provider's default model name.
	Model string `json:"model"`
}

// Validate returns an error if the request cannot be dispatched.
func (r *AuditRequest) Validate() error {
	switch r.Provider {
	case ProviderLocal, ProviderChat, ProviderContent:
	default:
		return Errorf(EINVALID, "unknown provider %q", r.Provider)
	}
	if r.URL == "" && r.HTML == "" {
		return Errorf(EINVALID, "url or html required")
	}
	return nil
}
