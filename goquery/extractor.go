// Package goquery implements signal extraction from page markup using
// CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
)

// Selector policy. Grouped selectors match each node at most once and
// in document order, which the button tally and the CTA pick rely on.
const (
	// buttonSelector is the button-like candidate set: native buttons,
	// anchors acting as buttons, .btn-styled elements, and test-id hints.
	buttonSelector = `button, a[role="button"], .btn, [data-testid*="button"]`

	// ctaSelector is the prioritized call-to-action candidate set. The
	// guess is the document-order-first element across the whole union,
	// not the first selector with any match.
	ctaSelector = `button[type="submit"], button:contains('Sign in'), button:contains('Buy'), a.button`

	// validationSelector matches invalid-state attributes (any value,
	// including "false") and error-styling classes.
	validationSelector = `[aria-invalid], .error, .error-message`

	// progressSelector matches multi-step progress markers.
	progressSelector = `progress, .step, [aria-current="step"]`

	inputSelector = `input, select, textarea`
)

// Ensure Extractor implements uxaudit.Extractor at compile time.
var _ uxaudit.Extractor = (*Extractor)(nil)

// Extractor derives uxaudit.Signals from raw HTML. It is stateless and
// safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the signal record for the given markup. Extraction is
// pure and total: malformed or empty input yields a zero-value record.
func (e *Extractor) Extract(html string) uxaudit.Signals {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return uxaudit.Signals{}
	}

	return uxaudit.Signals{
		Title:                   strings.TrimSpace(doc.Find("title").First().Text()),
		HasViewport:             doc.Find(`meta[name="viewport"]`).Length() > 0,
		Forms:                   doc.Find("form").Length(),
		Inputs:                  doc.Find(inputSelector).Length(),
		Labels:                  doc.Find("label").Length(),
		Buttons:                 doc.Find(buttonSelector).Length(),
		PrimaryCTAGuess:         strings.TrimSpace(doc.Find(ctaSelector).First().Text()),
		HasInlineValidationHint: doc.Find(validationSelector).Length() > 0,
		HasProgress:             doc.Find(progressSelector).Length() > 0,
	}
}
