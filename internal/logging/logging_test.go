package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yildizm/LifeStrat/internal/config"
)

func TestNew_InteractiveWithoutFileDiscards(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "debug"}, Options{Interactive: true})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_Levels(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "warn"}, Options{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	verbose, err := New(config.LoggingConfig{Level: "warn"}, Options{Verbose: true})
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_EmptyLevelIsInfo(t *testing.T) {
	logger, err := New(config.LoggingConfig{}, Options{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, Options{})
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifestrat.log")

	logger, err := New(config.LoggingConfig{Level: "info", File: path}, Options{Interactive: true})
	require.NoError(t, err)

	logger.Info("submission settled", zap.String("outcome", "success"), zap.Duration("elapsed", time.Second))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "submission settled")
	assert.Contains(t, string(data), `"outcome":"success"`)
	assert.Contains(t, string(data), `"elapsed"`)
}
