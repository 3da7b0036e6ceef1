package server

// Handler declares routes on a router.
//
//	func (h *ContactHandler) Routes(r server.Router) {
//		r.GET("/", h.page)
//		r.POST("/contact", h.submit)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles a request. A non-nil error is passed to the
// application's ErrorHandler unless a response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders an error returned by a handler.
type ErrorHandler func(Context, error) error
