package server

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// RunOption configures App.Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger          *slog.Logger
	listenerReady   func(net.Addr)
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Logger overrides the App logger for lifecycle messages.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds server drain plus shutdown hooks.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook runs before the listener accepts requests. An error aborts Run.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook runs after the server stops, in registration order.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// OnListen is called with the bound address once the listener is open.
// Useful with ":0".
func OnListen(fn func(net.Addr)) RunOption {
	return func(c *runConfig) {
		c.listenerReady = fn
	}
}
