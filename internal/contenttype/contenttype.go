// Package contenttype maps file extensions to MIME types. The mapping
// is backed by the process MIME table, which the daemon seeds from the
// mimedb database at startup.
package contenttype

import (
	"mime"
	"strings"
)

// Resolve returns the MIME type registered for ext, given with or
// without the leading dot and in any ASCII case. It returns the empty
// string when the extension is unknown; callers own the fallback
// policy.
func Resolve(ext string) string {
	if ext == "" {
		return ""
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return mime.TypeByExtension(strings.ToLower(ext))
}
