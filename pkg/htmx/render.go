package htmx

import (
	"net/http"
	"strings"
)

// Config describes the HTMX headers of one response.
type Config struct {
	Retarget          string
	Reswap            SwapStrategy
	Triggers          []string
	TriggersAfterSwap []string
}

// RenderOption configures HTMX response headers.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders sets the configured headers. Must run before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}

	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if len(c.Triggers) > 0 {
		h.Set(HeaderHXTrigger, strings.Join(c.Triggers, ", "))
	}
	if len(c.TriggersAfterSwap) > 0 {
		h.Set(HeaderHXTriggerAfterSwap, strings.Join(c.TriggersAfterSwap, ", "))
	}
}

// WithRetarget changes the element the response is swapped into.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap overrides the swap strategy.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithTrigger fires client-side events once the response is received.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, events...)
	}
}

// WithTriggerAfterSwap fires client-side events after the swap.
func WithTriggerAfterSwap(events ...string) RenderOption {
	return func(c *Config) {
		c.TriggersAfterSwap = append(c.TriggersAfterSwap, events...)
	}
}
