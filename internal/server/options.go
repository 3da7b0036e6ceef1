package server

import (
	"log/slog"
	"net/http"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger handed to every request Context.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMiddleware appends global middleware, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers route handlers.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithNotFoundHandler sets the handler for unmatched routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets the handler for unsupported methods.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			timeout:       defaultHealthTimeout,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithMount attaches a plain http.Handler, such as the Prometheus handler.
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if pattern != "" && h != nil {
			a.mounts = append(a.mounts, mount{pattern: pattern, handler: h})
		}
	}
}
