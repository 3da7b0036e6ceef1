package middlewares

import (
	"runtime"

	"github.com/yudhaa/portfolio/internal/server"
)

// DefaultStackSize is the default stack trace buffer in bytes.
const DefaultStackSize = 4096

type recoverConfig struct {
	stackSize    int
	disableStack bool
}

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize sets the stack trace buffer size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}

// WithRecoverDisableStack skips stack capture.
func WithRecoverDisableStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.disableStack = true
	}
}

// Recover converts panics into a *PanicError for the error handler.
func Recover(opts ...RecoverOption) server.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next server.HandlerFunc) server.HandlerFunc {
		return func(c server.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				var stack []byte
				if !cfg.disableStack {
					stack = make([]byte, cfg.stackSize)
					stack = stack[:runtime.Stack(stack, false)]
					c.LogError("panic recovered", "panic", r, "stack", string(stack))
				} else {
					c.LogError("panic recovered", "panic", r)
				}

				err = &PanicError{Value: r, Stack: stack}
			}()

			return next(c)
		}
	}
}
