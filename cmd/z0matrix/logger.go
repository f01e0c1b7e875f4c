package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/gogpu/z0matrix/internal/config"
)

// newLogger builds the process logger from the log block.
func newLogger(f *config.File, w io.Writer) *slog.Logger {
	level, err := f.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(f.Log.Format) == config.LogJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
