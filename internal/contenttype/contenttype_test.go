package contenttype

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	mimedb "gitlab.com/gitlab-org/go-mimedb"
)

func TestMain(m *testing.M) {
	if err := mimedb.LoadTypes(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestResolve(t *testing.T) {
	tests := map[string]struct {
		ext      string
		expected string
	}{
		"with leading dot":    {ext: ".txt", expected: "text/plain; charset=utf-8"},
		"without leading dot": {ext: "txt", expected: "text/plain; charset=utf-8"},
		"mixed case":          {ext: ".TXT", expected: "text/plain; charset=utf-8"},
		"html":                {ext: ".html", expected: "text/html; charset=utf-8"},
		"binary type":         {ext: ".png", expected: "image/png"},
		"unknown extension":   {ext: ".zyx", expected: ""},
		"empty extension":     {ext: "", expected: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, Resolve(tc.ext))
		})
	}
}
