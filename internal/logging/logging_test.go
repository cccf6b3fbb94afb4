package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullHandlerDiscards(t *testing.T) {
	h := NullHandler{}
	assert.False(t, h.Enabled(context.Background(), slog.LevelError))
	assert.NoError(t, h.Handle(context.Background(), slog.Record{}))
	assert.Equal(t, h, h.WithAttrs([]slog.Attr{slog.String("k", "v")}))
	assert.Equal(t, h, h.WithGroup("g"))

	// Must not panic.
	Discard().Error("dropped", "key", "value")
}

func TestOrDiscard(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	assert.Same(t, logger, OrDiscard(logger))

	fallback := OrDiscard(nil)
	assert.NotNil(t, fallback)
	assert.False(t, fallback.Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSwitchFollowsCurrentHandler(t *testing.T) {
	var first, second bytes.Buffer
	sw := NewSwitch(slog.NewTextHandler(&first, nil))
	logger := slog.New(sw)
	grouped := logger.With("run", 1).WithGroup("g")

	logger.Info("one")
	sw.Set(slog.NewTextHandler(&second, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger.Info("dropped")
	logger.Warn("two")
	grouped.Warn("three", "k", "v")

	assert.Contains(t, first.String(), "msg=one")
	assert.NotContains(t, first.String(), "two")
	assert.NotContains(t, second.String(), "dropped")
	assert.Contains(t, second.String(), "msg=two")
	assert.Contains(t, second.String(), "msg=three run=1 g.k=v")

	sw.Set(nil)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
