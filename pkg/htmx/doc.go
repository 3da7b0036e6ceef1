// Package htmx detects HTMX requests and sets HTMX response headers.
//
// Handlers that serve both full pages and HTMX partials branch on IsHTMX and
// describe response headers with render options:
//
//	if htmx.IsHTMX(r) {
//		htmx.NewConfig(
//			htmx.WithTrigger("contact:sent"),
//			htmx.WithReswap(htmx.SwapInnerHTML),
//		).ApplyHeaders(w)
//		return fragment.Render(r.Context(), w)
//	}
package htmx
