// Package uxaudit audits the usability of a web page: it derives a
// fixed set of structural signals from the page's markup, turns the
// signals and the raw markup into a model prompt, and streams the
// model's prioritized findings back to the caller as newline-delimited
// delta records.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// ollama/, openai/, gemini/).
package uxaudit
