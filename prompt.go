package uxaudit

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxPromptHTML caps the raw markup embedded in a prompt. The cap is a
// hard character cut, not a token-aware one; truncation may end
// mid-tag, which the model tolerates.
const MaxPromptHTML = 4000

// BuildPrompt renders the audit prompt from the raw markup and its
// extracted signals. Pure formatting: same inputs, same prompt. Every
// Signals field is embedded by name so the model sees the structured
// evidence alongside the markup.
func BuildPrompt(html string, sig Signals) string {
	var sb strings.Builder

	sb.WriteString("You are a UX auditor reviewing a single web page.\n\n")

	sb.WriteString("Structural signals extracted from the page:\n")
	fmt.Fprintf(&sb, "- title: %s\n", quoteOrNone(sig.Title))
	fmt.Fprintf(&sb, "- hasViewport: %t\n", sig.HasViewport)
	fmt.Fprintf(&sb, "- forms: %d\n", sig.Forms)
	fmt.Fprintf(&sb, "- inputs: %d\n", sig.Inputs)
	fmt.Fprintf(&sb, "- labels: %d\n", sig.Labels)
	fmt.Fprintf(&sb, "- buttons: %d\n", sig.Buttons)
	fmt.Fprintf(&sb, "- primaryCtaGuess: %s\n", quoteOrNone(sig.PrimaryCTAGuess))
	fmt.Fprintf(&sb, "- hasInlineValidationHint: %t\n", sig.HasInlineValidationHint)
	fmt.Fprintf(&sb, "- hasProgress: %t\n", sig.HasProgress)

	sb.WriteString("\nProduce a usability audit of this page:\n")
	sb.WriteString("- Give 5 to 10 findings, grouped by theme and ordered by severity (most severe first).\n")
	sb.WriteString("- Format each finding in markdown with **Issue**, **Impact**, and **Recommendation**.\n")
	sb.WriteString("- Write in plain English.\n")
	sb.WriteString("- Do not wrap the whole answer in a fenced code block.\n")

	fmt.Fprintf(&sb, "\nPage markup (first %d characters):\n", MaxPromptHTML)
	sb.WriteString(truncateMarkup(html))

	return sb.String()
}

// quoteOrNone renders a signal string quoted, or an explicit
// placeholder when the signal is empty.
func quoteOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return fmt.Sprintf("%q", s)
}

// truncateMarkup cuts the markup at MaxPromptHTML, backing up to a rune
// boundary so the prompt never carries a torn code point.
func truncateMarkup(html string) string {
	if len(html) <= MaxPromptHTML {
		return html
	}
	cut := MaxPromptHTML
	for cut > 0 && !utf8.RuneStart(html[cut]) {
		cut--
	}
	return html[:cut]
}
