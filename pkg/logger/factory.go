package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type options struct {
	writer     io.Writer
	level      slog.Leveler
	extractors []ContextExtractor
}

// Option configures a logger built by New or NewWithSentry.
type Option func(*options)

// WithWriter sets the output destination. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithExtractors adds context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a JSON logger.
func New(opts ...Option) *slog.Logger {
	o := buildOptions(opts)
	return slog.New(NewLogHandlerDecorator(o.jsonHandler(), o.extractors...))
}

// ParseLevel maps a level name (debug, info, warn, error) to slog.Level.
// Unknown names resolve to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildOptions(opts []Option) *options {
	o := &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) jsonHandler() slog.Handler {
	return slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level})
}
