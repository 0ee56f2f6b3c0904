package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/config"
)

// CharmLogger implements shared.Logger on top of charmbracelet/log
type CharmLogger struct {
	logger *log.Logger
	closer io.Closer
}

// NewCharmLogger builds a logger from the logging configuration. The caller
// must Close it to release a log file.
func NewCharmLogger(cfg config.LoggingConfig) (*CharmLogger, error) {
	var (
		w      io.Writer
		closer io.Closer
	)
	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "", "stderr":
		w = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	logger, err := newLogger(w, cfg)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	return &CharmLogger{logger: logger, closer: closer}, nil
}

// NewWriterLogger builds a logger writing to w, used by tests and the CLI
func NewWriterLogger(w io.Writer, cfg config.LoggingConfig) (*CharmLogger, error) {
	logger, err := newLogger(w, cfg)
	if err != nil {
		return nil, err
	}
	return &CharmLogger{logger: logger}, nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	formatter := log.TextFormatter
	switch cfg.Format {
	case "", "text":
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}

	opts := log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		ReportCaller:    cfg.IncludeCaller,
		Prefix:          cfg.Prefix,
		TimeFormat:      cfg.TimeFormat,
	}
	return log.NewWithOptions(w, opts), nil
}

// Log writes message at level with metadata as sorted key/value pairs
func (l *CharmLogger) Log(level, message string, metadata map[string]interface{}) {
	l.logger.Helper()

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		keyvals = append(keyvals, k, metadata[k])
	}

	l.logger.Log(toCharmLevel(level), message, keyvals...)
}

// With returns a logger that adds keyvals to every entry
func (l *CharmLogger) With(keyvals ...interface{}) *CharmLogger {
	return &CharmLogger{logger: l.logger.With(keyvals...)}
}

// Close releases the log file, if any
func (l *CharmLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func toCharmLevel(level string) log.Level {
	switch strings.ToUpper(level) {
	case shared.LevelDebug:
		return log.DebugLevel
	case shared.LevelWarn, "WARN":
		return log.WarnLevel
	case shared.LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

var _ shared.Logger = (*CharmLogger)(nil)
