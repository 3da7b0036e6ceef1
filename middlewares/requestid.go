package middlewares

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/yudhaa/portfolio/internal/server"
	"github.com/yudhaa/portfolio/pkg/logger"
)

// DefaultRequestIDHeaders are checked in order for an upstream request id.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// acceptedRequestID limits upstream ids to something safe to log and echo.
var acceptedRequestID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

type requestIDConfig struct {
	generator      func() string
	responseHeader string
	headers        []string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders replaces the headers checked for an upstream id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.headers = headers
	}
}

// WithRequestIDGenerator replaces the UUID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generator = gen
		}
	}
}

// RequestID assigns every request an id, stored under server.RequestIDKey
// and echoed in the X-Request-ID response header.
func RequestID(opts ...RequestIDOption) server.Middleware {
	cfg := &requestIDConfig{
		headers:        DefaultRequestIDHeaders,
		generator:      uuid.NewString,
		responseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next server.HandlerFunc) server.HandlerFunc {
		return func(c server.Context) error {
			var reqID string
			for _, header := range cfg.headers {
				if v := c.Header(header); acceptedRequestID.MatchString(v) {
					reqID = v
					break
				}
			}
			if reqID == "" {
				reqID = cfg.generator()
			}

			c.Set(server.RequestIDKey{}, reqID)
			c.SetHeader(cfg.responseHeader, reqID)

			return next(c)
		}
	}
}

// GetRequestID returns the request id, or "" outside RequestID.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(server.RequestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds request_id to log records made with the request
// context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
