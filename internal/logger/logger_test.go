package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestLevelForVerbosity checks the -v counter to zap level mapping.
func TestLevelForVerbosity(t *testing.T) {
	t.Parallel()

	require.Equal(t, zapcore.InfoLevel, LevelForVerbosity(0))
	require.Equal(t, zapcore.DebugLevel, LevelForVerbosity(1))
	require.Equal(t, zapcore.DebugLevel, LevelForVerbosity(3))
}

// TestFromContextFallback ensures the global logger is used when the context is bare.
func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithName verifies a named logger is stored and retrieved via the context.
func TestWithName(t *testing.T) {
	t.Parallel()

	ctx := WithName(context.Background(), "test")
	require.NotSame(t, Logger(), FromContext(ctx))
}
