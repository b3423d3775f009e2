package log

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverPanic(t *testing.T) {
	Setup(false)
	assert.True(t, Initialized())

	cleaned := false
	func() {
		defer RecoverPanic("test", func() { cleaned = true })
		panic("boom")
	}()
	assert.True(t, cleaned)
}

func TestSetupInstallsHandler(t *testing.T) {
	Setup(true)
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelInfo))
}
