package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/core/apperror"
)

func TestValidateFormat(t *testing.T) {
	valid := []string{
		"{PREFIX}-{YYYY}-{SEQ}",
		"{SEQ}",
		"{PREFIX}/{YY}{MM}{DD}/{SEQ}",
		"{PREFIX}-{UNKNOWN}-{SEQ}", // unknown names render verbatim, still balanced
	}
	for _, f := range valid {
		assert.NoError(t, ValidateFormat(f), "format %q", f)
	}

	invalid := []string{
		"{PREFIX}-{YYYY}",  // no {SEQ}
		"{SEQ",             // unbalanced open
		"{SEQ}}",           // unbalanced close
		"{{SEQ}}",          // nested open
		"INV-{YYYY}-{NUM}", // no {SEQ}
	}
	for _, f := range invalid {
		err := ValidateFormat(f)
		require.Error(t, err, "format %q", f)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeMalformedTemplate, appErr.Code)
	}
}

func TestConfigPatch_Validate(t *testing.T) {
	bad := "INV-{NUM}"
	err := ConfigPatch{Format: &bad}.Validate()
	require.Error(t, err)

	badInterval := ResetInterval("WEEKLY")
	err = ConfigPatch{ResetInterval: &badInterval}.Validate()
	require.Error(t, err)

	prefix := "FACT"
	good := "{PREFIX}-{SEQ}"
	monthly := ResetMonthly
	assert.NoError(t, ConfigPatch{Prefix: &prefix, Format: &good, ResetInterval: &monthly}.Validate())
}

func TestConfigPatch_Apply_DoesNotTouchCounterState(t *testing.T) {
	cfg := DefaultConfig(DocumentTypeInvoice, "INV")
	cfg.Counter = 41
	cfg.LastReset = date(2025, 1, 1)

	prefix := "FACT"
	monthly := ResetMonthly
	patched := ConfigPatch{Prefix: &prefix, ResetInterval: &monthly}.Apply(cfg)

	assert.Equal(t, "FACT", patched.Prefix)
	assert.Equal(t, ResetMonthly, patched.ResetInterval)
	assert.Equal(t, int64(41), patched.Counter)
	assert.Equal(t, cfg.LastReset, patched.LastReset)
	assert.Equal(t, cfg.Format, patched.Format)
}
