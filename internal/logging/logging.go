// Package logging builds the process-wide logging context: colored
// info-level output for the operator plus a persistent debug-level log
// file. The logger is constructed once at startup and injected into
// every component; nothing mutates global logger state afterwards.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/virtstack/ffu/internal/messages"
)

// DefaultLogPath is the persistent debug log location.
const DefaultLogPath = "/var/log/ffu.log"

// New returns a logger that writes human-readable info-level records to
// console and debug-level records to the file at path. The returned
// close function flushes and closes the file.
func New(console io.Writer, path string, noColor bool) (*slog.Logger, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf(messages.OpenLogFileErrFmt, path, err)
	}

	consoleHandler := tint.NewHandler(console, &tint.Options{
		Level:   slog.LevelInfo,
		NoColor: noColor,
	})
	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	logger := slog.New(fanout{handlers: []slog.Handler{consoleHandler, fileHandler}})
	return logger, file.Close, nil
}

// fanout forwards each record to every handler that accepts its level.
type fanout struct {
	handlers []slog.Handler
}

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return fanout{handlers: next}
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		next[i] = h.WithGroup(name)
	}
	return fanout{handlers: next}
}
