package zipfs

import (
	"archive/zip"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/webfold/staticserve/internal/storage"
)

func createArchive(t *testing.T) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "content.zip")

	f, err := os.Create(archivePath)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	files := map[string]string{
		"TestDocument.txt":  "Test document content\n",
		"subdir/nested.txt": "nested file\n",
	}
	for name, contents := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return archivePath
}

func TestOpenMissingArchive(t *testing.T) {
	provider, err := Open("testdata/no-such-archive.zip", storage.CaseSensitive)
	require.Error(t, err)
	require.Nil(t, provider)
}

func TestExists(t *testing.T) {
	provider, err := Open(createArchive(t), storage.CaseSensitive)
	require.NoError(t, err)
	defer provider.Close()

	ctx := context.Background()

	tests := map[string]struct {
		name         string
		expectAbsent bool
		expectDir    bool
		expectedSize int64
	}{
		"file at the archive root": {name: "/TestDocument.txt", expectedSize: 22},
		"nested file":              {name: "/subdir/nested.txt", expectedSize: 12},
		"implied directory":        {name: "/subdir", expectDir: true},
		"the root is a directory":  {name: "/", expectDir: true},
		"missing file":             {name: "/missing.file", expectAbsent: true},
		"case mismatch is a miss":  {name: "/testdocument.txt", expectAbsent: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			entry, err := provider.Exists(ctx, tc.name)
			require.NoError(t, err)

			if tc.expectAbsent {
				require.Nil(t, entry)
				return
			}

			require.NotNil(t, entry)
			require.Equal(t, tc.expectDir, entry.IsDir)
			require.Equal(t, tc.expectedSize, entry.Size)
		})
	}
}

func TestExistsCaseInsensitive(t *testing.T) {
	provider, err := Open(createArchive(t), storage.CaseInsensitive)
	require.NoError(t, err)
	defer provider.Close()

	ctx := context.Background()

	entry, err := provider.Exists(ctx, "/SUBDIR/Nested.TXT")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.False(t, entry.IsDir)
}

func TestRead(t *testing.T) {
	provider, err := Open(createArchive(t), storage.CaseSensitive)
	require.NoError(t, err)
	defer provider.Close()

	ctx := context.Background()

	entry, err := provider.Exists(ctx, "/TestDocument.txt")
	require.NoError(t, err)
	require.NotNil(t, entry)

	f, err := entry.Read(ctx)
	require.NoError(t, err)
	defer f.Close()

	contents, err := ioutil.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "Test document content\n", string(contents))
}
