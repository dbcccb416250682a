package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinytelemetry/logsheet/internal/model"
)

// Config selects the minimum level and an optional log file.
type Config struct {
	Level string // debug, info, warning, error
	File  string // empty writes to stderr
}

// ParseLevel converts a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", name)
	}
}

// RecordLevel maps a log record's severity to the slog level it is emitted at.
func RecordLevel(level model.Level) slog.Level {
	switch level {
	case model.LevelDebug:
		return slog.LevelDebug
	case model.LevelWarning:
		return slog.LevelWarn
	case model.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogRecord emits rec as "<timestamp>  <message>" at the record's own severity.
func LogRecord(ctx context.Context, logger *slog.Logger, rec model.LogRecord) {
	logger.Log(ctx, RecordLevel(rec.Level), rec.Timestamp+"  "+rec.Message)
}

// Setup builds the process logger and installs it as the slog and log default,
// so package-level log.Printf diagnostics share its format and destination.
// The returned cleanup closes the log file, if any.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
		}
		w = f
		cleanup = func() { _ = f.Close() }
	}

	logger := slog.New(NewHandler(w, level))
	slog.SetDefault(logger)
	return logger, cleanup, nil
}
