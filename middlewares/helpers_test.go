package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/yudhaa/portfolio/internal/server"
)

type routes func(r server.Router)

func (f routes) Routes(r server.Router) { f(r) }

// serve runs req through an app with the given middleware and a single GET /
// route.
func serve(h server.HandlerFunc, req *http.Request, opts ...server.Option) *httptest.ResponseRecorder {
	opts = append(opts, server.WithHandlers(routes(func(r server.Router) {
		r.GET("/", h)
		r.GET("/health/live", h)
	})))
	rec := httptest.NewRecorder()
	server.New(opts...).ServeHTTP(rec, req)
	return rec
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
