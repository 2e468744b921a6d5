package mount

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/webfold/staticserve/internal/storage"
)

func TestMatchPrefix(t *testing.T) {
	tests := map[string]struct {
		path      string
		prefix    string
		mode      storage.CaseMode
		remainder string
		matched   bool
	}{
		"empty prefix matches everything": {
			path: "/TestDocument.txt", remainder: "/TestDocument.txt", matched: true,
		},
		"empty prefix matches the root path": {
			path: "/", remainder: "/", matched: true,
		},
		"path under the prefix": {
			path: "/subdir/file.txt", prefix: "/subdir", remainder: "/file.txt", matched: true,
		},
		"path equal to the prefix normalizes to the lookup root": {
			path: "/subdir", prefix: "/subdir", remainder: "/", matched: true,
		},
		"prefix only matches on a segment boundary": {
			path: "/somedirectory/x", prefix: "/somedir", matched: false,
		},
		"path outside the prefix": {
			path: "/other/file.txt", prefix: "/subdir", matched: false,
		},
		"path shorter than the prefix": {
			path: "/su", prefix: "/subdir", matched: false,
		},
		"case mismatch is rejected when sensitive": {
			path: "/SubDir/file.txt", prefix: "/subdir", matched: false,
		},
		"case mismatch is accepted when insensitive": {
			path: "/SubDir/file.txt", prefix: "/subdir", mode: storage.CaseInsensitive,
			remainder: "/file.txt", matched: true,
		},
		"nested prefix": {
			path: "/assets/css/site.css", prefix: "/assets/css", remainder: "/site.css", matched: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			remainder, matched := matchPrefix(tc.path, tc.prefix, tc.mode)
			require.Equal(t, tc.matched, matched)
			require.Equal(t, tc.remainder, remainder)
		})
	}
}
