package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/formless-game/assetkit/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	logger, err := logging.New(false, false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	verbose, err := logging.New(true, false)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))

	quiet, err := logging.New(true, true)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.ErrorLevel))
}
