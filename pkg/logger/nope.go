package logger

import "log/slog"

// NewNope returns a logger that discards everything.
// Use it as the default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
