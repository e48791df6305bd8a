// Package logging wires slog to a rotated file. The terminal is owned
// by the compositor, so logs must never touch stdout or stderr while a
// session is live.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cellforge/vista/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from the config. With no file configured it
// returns a logger that discards everything.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	if cfg.File == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	handler := slog.NewTextHandler(rotator, nil)
	return slog.New(handler), rotator
}
