package goquery_test

import (
	"testing"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
	"github.com/pseuD0sgnf/my-ux-audit/goquery"
	"github.com/stretchr/testify/assert"
)

func TestExtractor_Extract_ShopExample(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	sig := e.Extract("<html><title>Shop</title><button type=submit>Buy</button></html>")

	assert.Equal(t, uxaudit.Signals{
		Title:           "Shop",
		Buttons:         1,
		PrimaryCTAGuess: "Buy",
	}, sig)
}

func TestExtractor_Extract_IsPure(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	html := `<html><title> Checkout </title>
		<meta name="viewport" content="width=device-width">
		<form><label>Email</label><input type="email"><select></select><textarea></textarea>
		<button type="submit">Pay now</button></form>
		<div class="error">Invalid email</div>
		<ol><li class="step">1</li><li class="step" aria-current="step">2</li></ol></html>`

	first := e.Extract(html)
	second := e.Extract(html)

	assert.Equal(t, first, second)
	assert.Equal(t, "Checkout", first.Title)
	assert.True(t, first.HasViewport)
	assert.Equal(t, 1, first.Forms)
	assert.Equal(t, 3, first.Inputs)
	assert.Equal(t, 1, first.Labels)
	assert.Equal(t, "Pay now", first.PrimaryCTAGuess)
	assert.True(t, first.HasInlineValidationHint)
	assert.True(t, first.HasProgress)
}

func TestExtractor_Extract_TotalOnBadInput(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	for name, html := range map[string]string{
		"empty":        "",
		"not html":     "{not: html}",
		"broken tags":  "<div><<<span</div",
		"binary bytes": "\x00\x01\x02",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.NotPanics(t, func() { e.Extract(html) })
		})
	}

	assert.Equal(t, uxaudit.Signals{}, e.Extract(""))
}

func TestExtractor_Extract_Buttons(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	t.Run("unions all button-like criteria", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body>
			<button>One</button>
			<a role="button" href="#">Two</a>
			<span class="btn">Three</span>
			<div data-testid="cta-button-main">Four</div>
		</body></html>`)

		assert.Equal(t, 4, sig.Buttons)
	})

	t.Run("counts a multi-criteria element once", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body><button class="btn" data-testid="save-button">Save</button></body></html>`)

		assert.Equal(t, 1, sig.Buttons)
	})
}

func TestExtractor_Extract_PrimaryCTA(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	t.Run("document-order-first wins across the union", func(t *testing.T) {
		t.Parallel()

		// The anchor appears before the submit button, so it wins even
		// though submit buttons lead the candidate list.
		sig := e.Extract(`<html><body>
			<a class="button" href="/later">Later CTA</a>
			<button type="submit">Submit</button>
		</body></html>`)

		assert.Equal(t, "Later CTA", sig.PrimaryCTAGuess)
	})

	t.Run("matches button text containing Sign in", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body><button>Sign in with email</button></body></html>`)

		assert.Equal(t, "Sign in with email", sig.PrimaryCTAGuess)
	})

	t.Run("matches button text containing Buy", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body><button>Buy now</button></body></html>`)

		assert.Equal(t, "Buy now", sig.PrimaryCTAGuess)
	})

	t.Run("empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body><a href="/">Home</a></body></html>`)

		assert.Empty(t, sig.PrimaryCTAGuess)
	})
}

func TestExtractor_Extract_ValidationHint(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	t.Run("aria-invalid false still counts", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body><input aria-invalid="false"></body></html>`)

		assert.True(t, sig.HasInlineValidationHint)
	})

	t.Run("error-message class counts", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body><p class="error-message">Required</p></body></html>`)

		assert.True(t, sig.HasInlineValidationHint)
	})

	t.Run("absent by default", func(t *testing.T) {
		t.Parallel()

		sig := e.Extract(`<html><body><input></body></html>`)

		assert.False(t, sig.HasInlineValidationHint)
	})
}

func TestExtractor_Extract_Progress(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	t.Run("progress element", func(t *testing.T) {
		t.Parallel()

		assert.True(t, e.Extract(`<html><body><progress value="1" max="3"></progress></body></html>`).HasProgress)
	})

	t.Run("aria-current step", func(t *testing.T) {
		t.Parallel()

		assert.True(t, e.Extract(`<html><body><li aria-current="step">Shipping</li></body></html>`).HasProgress)
	})
}

func TestExtractor_Extract_Viewport(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	assert.True(t, e.Extract(`<html><head><meta name="viewport" content="width=device-width"></head></html>`).HasViewport)
	assert.False(t, e.Extract(`<html><head><meta name="description" content="x"></head></html>`).HasViewport)
}
