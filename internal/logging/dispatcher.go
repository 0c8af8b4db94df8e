package logging

import (
	"log/slog"

	"github.com/rs/zerolog"
)

// DispatcherLogger adapts a slog.Logger to the dispatcher.Logger interface.
type DispatcherLogger struct {
	logger *slog.Logger
}

// NewDispatcherLogger wraps logger. A nil logger falls back to slog.Default.
func NewDispatcherLogger(logger *slog.Logger) *DispatcherLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatcherLogger{logger: logger.With("component", "dispatcher")}
}

func (l *DispatcherLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *DispatcherLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *DispatcherLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

// NewZerolog returns the zerolog logger used by the storage and metrics managers,
// writing to the same destination and level as the slog setup.
func NewZerolog(opts Options) zerolog.Logger {
	out := opts.File
	if out == nil {
		out = zerolog.ConsoleWriter{Out: osStdout, TimeFormat: "15:04:05"}
	}
	lvl := zerolog.InfoLevel
	switch ParseLevel(opts.Level) {
	case slog.LevelDebug:
		lvl = zerolog.DebugLevel
	case slog.LevelWarn:
		lvl = zerolog.WarnLevel
	case slog.LevelError:
		lvl = zerolog.ErrorLevel
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", serviceName).Logger()
}
