package logging

import (
	"io"
	"log/slog"
	"os"
)

func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// NewStderrLogger writes text diagnostics to stderr. Stdout carries the
// JSON-RPC frames, so stderr is the only stream diagnostics may use.
func NewStderrLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
