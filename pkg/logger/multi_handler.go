package logger

import (
	"context"
	"errors"
	"log/slog"
)

// multiHandler fans records out to several handlers. A failing handler does
// not stop delivery to the rest.
type multiHandler []slog.Handler

func newMultiHandler(handlers ...slog.Handler) slog.Handler {
	return multiHandler(handlers)
}

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range m {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m multiHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = fn(h)
	}
	return out
}
