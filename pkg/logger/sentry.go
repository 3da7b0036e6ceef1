package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
	// MinLevel selects which records are stored as Sentry logs:
	// slog.LevelError keeps errors only, anything lower keeps warnings too.
	MinLevel slog.Level
}

// FlushFunc waits up to timeout for buffered Sentry events to be sent.
type FlushFunc func(timeout time.Duration) bool

// NewWithSentry creates a logger that writes to stdout and, when a DSN is
// configured, to Sentry. Errors become Sentry issues.
func NewWithSentry(cfg SentryConfig, opts ...Option) (*slog.Logger, FlushFunc) {
	o := buildOptions(opts)
	stdoutHandler := o.jsonHandler()

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(stdoutHandler, o.extractors...)), noFlush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdoutHandler, o.extractors...)), noFlush
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(stdoutHandler, sentryHandler)
	return slog.New(NewLogHandlerDecorator(combined, o.extractors...)), sentry.Flush
}

func noFlush(time.Duration) bool { return true }
