// Package logging holds the slog plumbing shared by the library packages.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
)

// NullHandler discards every record.
type NullHandler struct{}

// Enabled reports false for every level so callers skip building records.
func (NullHandler) Enabled(context.Context, slog.Level) bool { return false }

// Handle drops the record.
func (NullHandler) Handle(context.Context, slog.Record) error { return nil }

// WithAttrs returns the handler unchanged.
func (h NullHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup returns the handler unchanged.
func (h NullHandler) WithGroup(string) slog.Handler { return h }

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(NullHandler{})
}

// OrDiscard returns logger, or a discarding logger when logger is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Switch forwards records to a handler that can be replaced while loggers
// built on the Switch stay in use.
type Switch struct {
	target atomic.Pointer[slog.Handler]
}

// NewSwitch returns a Switch forwarding to h, or discarding when h is nil.
func NewSwitch(h slog.Handler) *Switch {
	s := &Switch{}
	s.Set(h)
	return s
}

// Set replaces the destination handler. A nil handler discards.
func (s *Switch) Set(h slog.Handler) {
	if h == nil {
		h = NullHandler{}
	}
	s.target.Store(&h)
}

func (s *Switch) current() slog.Handler { return *s.target.Load() }

// Enabled reports whether the current destination handles level.
func (s *Switch) Enabled(ctx context.Context, level slog.Level) bool {
	return s.current().Enabled(ctx, level)
}

// Handle passes r to the current destination.
func (s *Switch) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

// WithAttrs returns a handler that adds attrs to whichever destination is current.
func (s *Switch) WithAttrs(attrs []slog.Attr) slog.Handler {
	return switchView{sw: s}.WithAttrs(attrs)
}

// WithGroup returns a handler that opens the group on whichever destination is current.
func (s *Switch) WithGroup(name string) slog.Handler {
	return switchView{sw: s}.WithGroup(name)
}

// switchView replays attrs and groups onto the Switch's current handler.
type switchView struct {
	sw    *Switch
	steps []func(slog.Handler) slog.Handler
}

func (v switchView) handler() slog.Handler {
	h := v.sw.current()
	for _, step := range v.steps {
		h = step(h)
	}
	return h
}

func (v switchView) Enabled(ctx context.Context, level slog.Level) bool {
	return v.sw.current().Enabled(ctx, level)
}

func (v switchView) Handle(ctx context.Context, r slog.Record) error {
	return v.handler().Handle(ctx, r)
}

func (v switchView) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return v
	}
	return v.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (v switchView) WithGroup(name string) slog.Handler {
	if name == "" {
		return v
	}
	return v.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (v switchView) with(step func(slog.Handler) slog.Handler) switchView {
	steps := make([]func(slog.Handler) slog.Handler, len(v.steps), len(v.steps)+1)
	copy(steps, v.steps)
	return switchView{sw: v.sw, steps: append(steps, step)}
}
