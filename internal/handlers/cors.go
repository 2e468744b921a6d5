package handlers

import (
	"net/http"

	"github.com/rs/cors"
)

var corsHandler = cors.New(cors.Options{AllowedMethods: []string{http.MethodGet, http.MethodHead}})

// CORS wraps handler with a cross-origin policy limited to the methods
// a static mount understands. disabled skips the wrapper entirely.
func CORS(handler http.Handler, disabled bool) http.Handler {
	if disabled {
		return handler
	}

	return corsHandler.Handler(handler)
}
