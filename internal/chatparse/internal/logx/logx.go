// Package logx is the package-level logger chatparse's dialects use for the
// two ambient log lines spec.md §7 calls for: recoverable format errors
// (debug) and dialect fallback notices. A plain log/slog logger, not a
// third-party logging library — the teacher never picked one, and
// internal/agent/learnings.go records a direct user preference for slog,
// which this follows.
package logx

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// SetLevel adjusts the minimum level logged; callers embedding chatparse in
// a larger program can raise it to LevelDebug to see recoverable-format-error
// detail during development.
func SetLevel(level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Debugf logs a recoverable format error or similar low-level detail.
func Debugf(msg string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Debug(msg, args...)
}

// Warnf logs a dialect fallback notice (e.g. a tool call's arguments failed
// schema validation but were still emitted).
func Warnf(msg string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Warn(msg, args...)
}
