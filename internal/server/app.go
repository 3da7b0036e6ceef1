package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yudhaa/portfolio/pkg/health"
	"github.com/yudhaa/portfolio/pkg/logger"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App owns the router and the request lifecycle. It is immutable after New.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	mounts                  []mount
	middlewares             []Middleware
	handlers                []Handler
}

type mount struct {
	handler http.Handler
	pattern string
}

// New builds an App from options.
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		logger:       logger.NewNope(),
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled or the process is signalled.
func (a *App) Run(ctx context.Context, addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(ctx, runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		listenerReady:   cfg.listenerReady,
	})
}

func (a *App) setupRoutes() {
	notFound := a.notFoundHandler
	if notFound == nil {
		notFound = func(c Context) error { return ErrNotFound(http.StatusText(http.StatusNotFound)) }
	}
	methodNotAllowed := a.methodNotAllowedHandler
	if methodNotAllowed == nil {
		methodNotAllowed = func(c Context) error {
			return ErrMethodNotAllowed(http.StatusText(http.StatusMethodNotAllowed))
		}
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	a.router.NotFound(a.wrapHandler(notFound))
	a.router.MethodNotAllowed(a.wrapHandler(methodNotAllowed))

	// Probes and mounts bypass the contact handlers but still get request
	// ids and panic recovery from the global middleware.
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath,
			health.ReadinessHandler(a.healthConfig.checks,
				health.WithLogger(a.logger),
				health.WithTimeout(a.healthConfig.timeout),
			))
	}

	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// adaptMiddleware converts a Middleware into chi's func(http.Handler) http.Handler.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a.logger)
			wrapped := mw(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})
			if err := wrapped(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("error after response was written", slog.String("error", err.Error()))
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", slog.String("error", herr.Error()))
	}
}

// RequestIDKey is the context key under which the request id middleware
// stores the id. Defined here so the error handler can report it.
type RequestIDKey struct{}

// DefaultErrorHandler maps err to an HTTPError and writes it as JSON for JSON
// clients and as plain text otherwise. Non-HTTP errors are logged and hidden
// behind a generic 500.
func DefaultErrorHandler(c Context, err error) error {
	herr, ok := AsHTTPError(err)
	if !ok {
		c.LogError("request failed", slog.String("error", err.Error()))
		herr = ErrInternal(http.StatusText(http.StatusInternalServerError), WithError(err))
	} else if herr.Code >= http.StatusInternalServerError && herr.Err != nil {
		c.LogError("request failed", slog.Int("status", herr.Code), slog.String("error", herr.Err.Error()))
	}

	if id, ok := c.Get(RequestIDKey{}).(string); ok {
		herr.RequestID = id
	}

	if c.WantsJSON() {
		return c.JSON(herr.Code, errorBody{
			Success:   false,
			Message:   herr.Message,
			ErrorCode: herr.ErrorCode,
			RequestID: herr.RequestID,
		})
	}
	return c.String(herr.Code, herr.Message)
}

type errorBody struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Success   bool   `json:"success"`
}

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
	defaultHealthTimeout = 5 * time.Second
)

// HealthOption configures the health endpoints.
type HealthOption func(*healthConfig)

func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessTimeout bounds the readiness checks.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(c *healthConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if name == "" || fn == nil {
			return
		}
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
