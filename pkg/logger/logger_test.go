package logger

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOLAP_Logger_New(t *testing.T) {
	t.Parallel()

	log := New(false)
	require.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, log.Enabled(context.Background(), slog.LevelDebug))

	verbose := New(true)
	require.True(t, verbose.Enabled(context.Background(), slog.LevelDebug))
}

func TestOLAP_Logger_Discard(t *testing.T) {
	t.Parallel()

	log := Discard()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("dropped")
}

func TestOLAP_Logger_TimestampFormat(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 60_000_000, time.UTC)
	require.Equal(t, "2026-01-02T03:04:05.060Z", formatRFC3339Millis(ts))
}
