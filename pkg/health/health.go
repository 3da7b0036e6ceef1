package health

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports a dependency as unhealthy by returning an error.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to check functions.
type Checks map[string]CheckFunc

// Response is the aggregated readiness result.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the result of a single named check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures readiness checks.
type Option func(*config)

// WithTimeout bounds the total time spent running checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks concurrently and returns the aggregated response.
// The error wraps ErrCheckFailed when any check fails.
func Run(ctx context.Context, checks Checks, opts ...Option) (*Response, error) {
	resp := runChecks(ctx, checks, newConfig(opts...))
	if resp.Status == StatusUnhealthy {
		return resp, ErrCheckFailed
	}
	return resp, nil
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]Check, len(checks))
	)

	// Checks never return errors to the group so one failure does not
	// cancel the others.
	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			result := Check{Status: StatusHealthy}
			if err := runCheck(ctx, check); err != nil {
				result = Check{Status: StatusUnhealthy, Error: err.Error()}
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := StatusHealthy
	for _, r := range results {
		if r.Status == StatusUnhealthy {
			status = StatusUnhealthy
			break
		}
	}

	return &Response{Status: status, Checks: results}
}

// runCheck treats a check that outlives the deadline as timed out, even if it
// ignores ctx.
func runCheck(ctx context.Context, check CheckFunc) error {
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()

	select {
	case err := <-done:
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return ErrCheckTimeout
		}
		return err
	case <-ctx.Done():
		return ErrCheckTimeout
	}
}
