package htmx

import "net/http"

// IsHTMX reports whether the request was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted reports whether the request came from an hx-boost link or form.
// Boosted requests expect a full page.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// Target returns the id of the element HTMX will swap into, if any.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}
