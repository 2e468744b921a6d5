package request

import "net/http"

const (
	headerForwardedProto = "X-Forwarded-Proto"
	schemeHTTPS          = "https"
)

// IsHTTPS reports whether the request reached us over TLS, either
// directly or via a forwarding proxy that set X-Forwarded-Proto.
func IsHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	return r.Header.Get(headerForwardedProto) == schemeHTTPS
}
