// Package middlewares holds the global middleware of the portfolio server.
//
// # Request ID
//
// RequestID reuses an upstream X-Request-ID (or X-Correlation-ID) header or
// generates a UUID, stores it in the request context and echoes it back.
// RequestIDExtractor adds it to every log record:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//
// # Recover
//
// Recover turns a panic into a *PanicError returned to the error handler, so
// a crashing handler still produces a response.
//
// # I18n
//
// I18n resolves the request language from the "lang" cookie, the ?lang=
// query parameter, then Accept-Language, falling back to the catalogue
// default. A language chosen through ?lang= is remembered in the cookie.
//
// # RequestLogger
//
// RequestLogger writes one record per request with method, path, status,
// size and duration.
//
// Order matters: RequestID first so later records carry the id, then
// RequestLogger, Recover and I18n.
package middlewares
