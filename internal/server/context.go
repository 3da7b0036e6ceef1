package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/yudhaa/portfolio/pkg/htmx"
	"github.com/yudhaa/portfolio/pkg/i18n"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// TranslatorKey is the context key for the request's *i18n.Translator.
type TranslatorKey struct{}

// LanguageKey is the context key for the resolved language.
type LanguageKey struct{}

// Component is anything renderable, templ.Component included.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context gives handlers access to the request, the response and the
// request-scoped services. It is also a context.Context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a chi URL parameter.
	Param(name string) string
	Query(name string) string
	// Form returns a form value, parsing the body on first use.
	Form(name string) string
	Header(name string) string
	SetHeader(name, value string)

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)

	// IsJSON reports whether the request body is JSON.
	IsJSON() bool
	// WantsJSON reports whether the client prefers a JSON response.
	WantsJSON() bool
	IsHTMX() bool

	// BindJSON decodes a JSON body into v. Unknown fields are ignored.
	BindJSON(v any) error

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Render writes component with code. HTMX requests always get 200.
	Render(code int, component Component, opts ...htmx.RenderOption) error
	// RenderPartial renders partial for HTMX requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Error builds an HTTPError to be returned from the handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	Written() bool
	// ResponseWriter exposes status and size for logging middleware.
	ResponseWriter() *ResponseWriter

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key, value any)
	Get(key any) any

	// T translates key with the request's translator, or returns key.
	T(key string, placeholders ...i18n.M) string
	// Language returns the resolved request language, or "".
	Language() string
}

type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
}

// newContext reuses w when an outer layer already wrapped it, so every
// middleware and the handler share one written/status state.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}
	return &requestContext{
		request:        r,
		responseWriter: rw,
		logger:         logger,
	}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.responseWriter }
func (c *requestContext) Context() context.Context      { return c.request.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string {
	return urlParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	http.SetCookie(c.responseWriter, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.request.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *requestContext) IsJSON() bool {
	mt, _, err := mime.ParseMediaType(c.request.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func (c *requestContext) WantsJSON() bool {
	if c.IsHTMX() {
		return false
	}
	return c.IsJSON() || strings.Contains(c.request.Header.Get("Accept"), "application/json")
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) BindJSON(v any) error {
	body := http.MaxBytesReader(c.responseWriter, c.request.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("bind json: %w", err)
	}
	return nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := io.WriteString(c.responseWriter, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(opts) > 0 && c.IsHTMX() {
		htmx.NewConfig(opts...).ApplyHeaders(c.responseWriter)
	}

	c.responseWriter.WriteHeader(code)
	return component.Render(c.request.Context(), c.responseWriter)
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if c.IsHTMX() && !htmx.IsBoosted(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) translator() *i18n.Translator {
	if tr, ok := c.Get(TranslatorKey{}).(*i18n.Translator); ok {
		return tr
	}
	return nil
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	if lang, ok := c.Get(LanguageKey{}).(string); ok {
		return lang
	}
	return ""
}
