// Package server is the HTTP layer of the portfolio site.
//
// It wraps chi with a small handler model: handlers receive a Context and
// return an error, middlewares wrap HandlerFunc, and a single ErrorHandler
// turns returned errors into responses.
//
//	app := server.New(
//		server.WithLogger(log),
//		server.WithMiddleware(
//			middlewares.RequestID(),
//			middlewares.Recover(),
//			middlewares.I18n(catalogue),
//		),
//		server.WithHandlers(contact.NewHandler(svc, pages)),
//		server.WithHealthChecks(server.WithReadinessCheck("mailer", svc.Healthcheck)),
//	)
//	err := app.Run(ctx, ":8080", server.ShutdownTimeout(10*time.Second))
//
// # Responses
//
// Context.Render writes templ components. For HTMX requests the response
// status is always 200 because HTMX only swaps successful responses; the
// intended status is still recorded on the ResponseWriter for logging.
//
// # Errors
//
// Returning an *HTTPError selects the status and user-facing message. Any
// other error becomes a 500 with a generic message. The default error handler
// answers JSON clients with {"success":false,"message":...} and everyone else
// with plain text; WithErrorHandler replaces it.
//
// # Shutdown
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests and runs shutdown hooks within the configured
// timeout.
package server
