package testutil

import (
	"testing"

	"kodbot/internal/i18n"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestTexts loads the embedded string tables with uz as fallback
func NewTestTexts(t testing.TB) *i18n.Provider {
	t.Helper()
	p, err := i18n.NewProvider("uz")
	require.NoError(t, err)
	return p
}
