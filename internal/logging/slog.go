package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const serviceName = "swb-sim"

// Indirection for tests that capture stdout.
var (
	osStdout = os.Stdout
	osPipe   = os.Pipe
)

// Options configures SlogManager.Setup.
type Options struct {
	Level string
	// File receives text logs. Stdout is used when File is nil.
	File io.Writer
	// Graylog is a GELF UDP address such as "graylog:12201". Empty disables it.
	Graylog string
	// Provider enables the OTel log bridge when non-nil.
	Provider *sdklog.LoggerProvider
	// Context adds dynamic attributes, such as the simulation tick, to every record.
	Context ContextProvider
}

// SlogManager owns the process logger and the sinks behind it.
type SlogManager struct {
	logger *slog.Logger

	logProvider *sdklog.LoggerProvider
	gelf        *gelf.Writer
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// ParseLevel converts a string log level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds the handler chain. Calling it again replaces the previous logger and
// closes the previous Graylog writer.
func (m *SlogManager) Setup(opts Options) error {
	lvl := ParseLevel(opts.Level)

	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	if opts.File != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.File, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(osStdout, handlerOpts))
	}

	if m.gelf != nil {
		_ = m.gelf.Close()
		m.gelf = nil
	}
	if opts.Graylog != "" {
		w, err := gelf.NewWriter(opts.Graylog)
		if err != nil {
			return fmt.Errorf("connecting to graylog %s: %w", opts.Graylog, err)
		}
		w.Facility = serviceName
		m.gelf = w
		handlers = append(handlers, slog.NewJSONHandler(w, handlerOpts))
	}

	m.logProvider = opts.Provider
	if opts.Provider != nil {
		handlers = append(handlers, otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(opts.Provider)))
	}

	var h slog.Handler = NewMultiHandler(handlers...)
	if opts.Context != nil {
		h = NewContextHandler(h, opts.Context)
	}

	m.logger = slog.New(h)
	m.logger.Info("logging initialized", "level", lvl.String(), "graylog", opts.Graylog != "", "otel", opts.Provider != nil)
	return nil
}

// Logger returns the configured logger, or slog.Default before Setup.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// Close flushes and releases the sinks.
func (m *SlogManager) Close(ctx context.Context) error {
	var errs []error
	if err := m.Flush(ctx); err != nil {
		errs = append(errs, err)
	}
	if m.gelf != nil {
		if err := m.gelf.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing graylog writer: %w", err))
		}
		m.gelf = nil
	}
	return errors.Join(errs...)
}
