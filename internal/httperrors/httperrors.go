// Package httperrors serves canned error responses.
package httperrors

import (
	"fmt"
	"net/http"
)

// Serve404 writes a 404 response with an empty body. A mount owns the
// not-found response for every path inside its prefix and sends no
// error page a client could mistake for content.
func Serve404(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusNotFound)
}

// Serve500 writes a plain 500 response.
func Serve500(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintln(w, "Something went wrong on our end.")
}

// NotFoundHandler returns a handler that always serves the canned 404.
// It terminates a middleware chain of mounts.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Serve404(w)
	})
}
