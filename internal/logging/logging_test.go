package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "premium.log")
	logger, err := New(Config{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("rate table reload failed", zap.String("path", "rates.hcl"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"rate table reload failed"`)
	assert.Contains(t, out, `"path":"rates.hcl"`)
	assert.Contains(t, out, `"timestamp"`)
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestInitializeReplacesGlobal(t *testing.T) {
	previous := Logger
	defer func() { Logger = previous }()

	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: "stderr"}))
	assert.NotSame(t, previous, Logger)
	assert.True(t, Logger.Core().Enabled(zap.DebugLevel))
}
