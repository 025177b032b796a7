// Package applog initialises the global slog logger for the application.
// Call Init once at startup; all other packages use log/slog directly.
package applog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options controls where logs go.
type Options struct {
	Debug bool
	// File is the log file path. Empty means pokergraph.log in the temp
	// dir; "-" logs to stderr only.
	File string
}

// Init sets up the global slog logger, writing text logs to stderr and the
// log file. The returned func closes the file.
func Init(opts Options) func() {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	writers := []io.Writer{os.Stderr}
	closeFn := func() {}
	path := opts.File
	if path == "" {
		path = DefaultLogPath()
	}
	if path != "-" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			writers = append(writers, f)
			closeFn = func() { _ = f.Close() }
		}
	}

	h := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	return closeFn
}

func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), "pokergraph.log")
}
