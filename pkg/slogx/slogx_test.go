package slogx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFormatSelection(t *testing.T) {
	t.Run("dev defaults to text", func(t *testing.T) {
		logger := New(Config{Env: "dev"})
		_, ok := logger.Handler().(*slog.TextHandler)
		require.True(t, ok)
	})

	t.Run("non-dev defaults to json", func(t *testing.T) {
		logger := New(Config{Env: "prod"})
		_, ok := logger.Handler().(*slog.JSONHandler)
		require.True(t, ok)
	})

	t.Run("explicit format wins over env", func(t *testing.T) {
		logger := New(Config{Env: "dev", Format: "json"})
		_, ok := logger.Handler().(*slog.JSONHandler)
		require.True(t, ok)
	})
}

func TestNewLevel(t *testing.T) {
	ctx := context.Background()

	logger := New(Config{Level: "warn"})
	require.False(t, logger.Enabled(ctx, slog.LevelInfo))
	require.True(t, logger.Enabled(ctx, slog.LevelWarn))

	logger = New(Config{Level: "nonsense"})
	require.True(t, logger.Enabled(ctx, slog.LevelInfo))
}

func TestFromContextFallback(t *testing.T) {
	ctx := context.Background()
	require.NotNil(t, FromContext(ctx))

	logger := slog.Default().With("k", "v")
	got := FromContext(WithContext(ctx, logger))
	require.Same(t, logger, got)
}
