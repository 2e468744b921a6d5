package mount

import (
	"strings"

	"gitlab.com/webfold/staticserve/internal/storage"
)

// matchPrefix reports whether requestPath falls under prefix on a path
// segment boundary and returns the remainder used for the storage
// lookup. An empty prefix matches every path. An empty remainder
// normalizes to the lookup root "/".
func matchPrefix(requestPath, prefix string, mode storage.CaseMode) (string, bool) {
	if prefix == "" {
		return normalizeRemainder(requestPath), true
	}

	if len(requestPath) < len(prefix) {
		return "", false
	}

	head, rest := requestPath[:len(prefix)], requestPath[len(prefix):]
	if mode == storage.CaseInsensitive {
		if !strings.EqualFold(head, prefix) {
			return "", false
		}
	} else if head != prefix {
		return "", false
	}

	// A prefix of /somedir must not match /somedirectory/x.
	if rest != "" && rest[0] != '/' {
		return "", false
	}

	return normalizeRemainder(rest), true
}

func normalizeRemainder(rest string) string {
	if rest == "" {
		return "/"
	}

	return rest
}
