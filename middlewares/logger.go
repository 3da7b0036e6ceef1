package middlewares

import (
	"log/slog"
	"time"

	"github.com/yudhaa/portfolio/internal/server"
)

// RequestLogger logs every request after it completes. Responses with a
// 5xx status are logged at error level.
func RequestLogger(skipPaths ...string) server.Middleware {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next server.HandlerFunc) server.HandlerFunc {
		return func(c server.Context) error {
			if _, ok := skip[c.Request().URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			switch {
			case err != nil || rw.Status() >= 500:
				c.LogError("request completed", attrs...)
			default:
				c.LogInfo("request completed", attrs...)
			}
			return err
		}
	}
}
