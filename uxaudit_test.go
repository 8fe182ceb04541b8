package uxaudit_test

import (
	"fmt"
	"testing"

	uxaudit "github.com/pseuD0sgnf/my-ux-audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := uxaudit.Errorf(uxaudit.EINVALID, "provider %q not supported", "test")

	assert.Equal(t, uxaudit.EINVALID, uxaudit.ErrorCode(err))
	assert.Equal(t, "provider \"test\" not supported", uxaudit.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, uxaudit.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uxaudit.EINTERNAL, uxaudit.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("dispatch: %w", uxaudit.Errorf(uxaudit.ENOTFOUND, "no model"))

	assert.Equal(t, uxaudit.ENOTFOUND, uxaudit.ErrorCode(err))
	assert.Equal(t, "no model", uxaudit.ErrorMessage(err))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, uxaudit.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", uxaudit.ErrorMessage(fmt.Errorf("boom")))
}

func TestUpstreamError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("chat: %w", &uxaudit.UpstreamError{StatusCode: 429, Body: []byte("slow down")})

	assert.Equal(t, uxaudit.EUPSTREAM, uxaudit.ErrorCode(err))
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "slow down")
}

func TestAuditRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts each known provider", func(t *testing.T) {
		t.Parallel()

		for _, p := range []uxaudit.Provider{uxaudit.ProviderLocal, uxaudit.ProviderChat, uxaudit.ProviderContent} {
			req := &uxaudit.AuditRequest{Provider: p, HTML: "<html></html>"}
			require.NoError(t, req.Validate())
		}
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		t.Parallel()

		req := &uxaudit.AuditRequest{Provider: "cloud", HTML: "<html></html>"}
		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, uxaudit.EINVALID, uxaudit.ErrorCode(err))
	})

	t.Run("rejects missing url and html", func(t *testing.T) {
		t.Parallel()

		req := &uxaudit.AuditRequest{Provider: uxaudit.ProviderLocal}
		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, uxaudit.EINVALID, uxaudit.ErrorCode(err))
		assert.Contains(t, uxaudit.ErrorMessage(err), "url or html")
	})
}
