package uxaudit

// Signals is the fixed record of structural usability signals derived
// from page markup. It is immutable once produced and is a total
// function of the input HTML: the same markup always yields a
// field-for-field identical record.
type Signals struct {
	// Title is the first <title> element's text, trimmed; empty if absent.
	Title string `json:"title"`

	// HasViewport reports whether a responsive viewport meta tag is present.
	HasViewport bool `json:"hasViewport"`

	// Forms counts form elements.
	Forms int `json:"forms"`

	// Inputs counts input, select and textarea elements.
	Inputs int `json:"inputs"`

	// Labels counts label elements.
	Labels int `json:"labels"`

	// Buttons counts distinct elements matching the button-like selector
	// set; an element matching several criteria is counted once.
	Buttons int `json:"buttons"`

	// PrimaryCTAGuess is the trimmed text of the document-order-first
	// element matching the call-to-action candidate set; empty if none.
	PrimaryCTAGuess string `json:"primaryCtaGuess"`

	// HasInlineValidationHint reports any element carrying an
	// aria-invalid attribute (regardless of value) or an error-styling
	// class.
	HasInlineValidationHint bool `json:"hasInlineValidationHint"`

	// HasProgress reports any element signalling multi-step progress.
	HasProgress bool `json:"hasProgress"`
}

// Extractor derives usability signals from raw HTML.
type Extractor interface {
	// Extract returns the signal record for the given markup.
	// Extraction never fails: malformed or empty HTML yields a record
	// with zero-value fields rather than an error.
	Extract(html string) Signals
}
