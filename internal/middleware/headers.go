package middleware

import (
	"errors"
	"net/http"
	"strings"
)

var errInvalidHeaderParameter = errors.New("invalid syntax specified as header parameter")

// ParseHeaderString parses a list of "Key: Value" strings into a header map.
func ParseHeaderString(customHeaders []string) (http.Header, error) {
	headers := http.Header{}
	for _, keyValueString := range customHeaders {
		keyValue := strings.SplitN(keyValueString, ":", 2)
		if len(keyValue) != 2 {
			return nil, errInvalidHeaderParameter
		}

		key := strings.TrimSpace(keyValue[0])
		value := strings.TrimSpace(keyValue[1])

		headers[key] = append(headers[key], value)
	}

	return headers, nil
}

// CustomHeaders adds the configured headers to every response before
// the inner handler runs.
func CustomHeaders(handler http.Handler, headers http.Header) http.Handler {
	if len(headers) == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, values := range headers {
			for _, value := range values {
				w.Header().Add(k, value)
			}
		}

		handler.ServeHTTP(w, r)
	})
}
