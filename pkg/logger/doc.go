// Package logger builds the structured loggers used across the service.
//
// Loggers are plain *slog.Logger values writing JSON. Two additions sit on top
// of log/slog: context extractors, which inject request-scoped attributes such
// as the request id on every call, and an optional Sentry fan-out for warnings
// and errors.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "contact submitted")
//	// {"level":"INFO","msg":"contact submitted","request_id":"..."}
//
// NewWithSentry falls back to stdout-only logging when the DSN is empty or the
// SDK cannot be initialised, so development and production share one code path.
// Call the returned flush function before exit.
//
// Components that accept an optional logger default to NewNope.
package logger
