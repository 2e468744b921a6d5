// Package zipfs implements a read-only storage provider backed by a
// zip archive. The archive's central directory is indexed once at open
// time; lookups afterwards are map hits and safe for concurrent use.
package zipfs

import (
	"context"
	"path"
	"strings"

	zip "gitlab.com/gitlab-org/golang-archive-zip"

	"gitlab.com/webfold/staticserve/internal/storage"
)

// Provider serves lookups from a zip archive.
type Provider struct {
	archive *zip.ReadCloser
	mode    storage.CaseMode
	files   map[string]*zip.File
	dirs    map[string]struct{}
}

// Open reads the central directory of the archive at archivePath and
// returns a Provider over it. It fails fast on a missing or corrupt
// archive.
func Open(archivePath string, mode storage.CaseMode) (*Provider, error) {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		archive: archive,
		mode:    mode,
		files:   make(map[string]*zip.File),
		dirs:    make(map[string]struct{}),
	}

	for _, file := range archive.File {
		name := normalize(file.Name)
		if name == "" {
			continue
		}

		if strings.HasSuffix(file.Name, "/") || file.FileInfo().IsDir() {
			p.dirs[name] = struct{}{}
			continue
		}

		p.files[name] = file
		for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
			p.dirs[dir] = struct{}{}
		}
	}

	return p, nil
}

// Close releases the underlying archive handle. The provider must not
// be used afterwards.
func (p *Provider) Close() error {
	return p.archive.Close()
}

// Exists implements storage.Provider.
func (p *Provider) Exists(ctx context.Context, name string) (*storage.Entry, error) {
	name = normalize(name)

	if name == "" {
		// The archive root behaves like a directory.
		return &storage.Entry{IsDir: true}, nil
	}

	if file, ok := p.lookupFile(name); ok {
		return &storage.Entry{
			Size: int64(file.UncompressedSize64),
			Open: func(ctx context.Context) (storage.File, error) {
				return file.Open()
			},
		}, nil
	}

	if p.lookupDir(name) {
		return &storage.Entry{IsDir: true}, nil
	}

	return nil, nil
}

func (p *Provider) lookupFile(name string) (*zip.File, bool) {
	if file, ok := p.files[name]; ok {
		return file, true
	}

	if p.mode == storage.CaseInsensitive {
		for stored, file := range p.files {
			if strings.EqualFold(stored, name) {
				return file, true
			}
		}
	}

	return nil, false
}

func (p *Provider) lookupDir(name string) bool {
	if _, ok := p.dirs[name]; ok {
		return true
	}

	if p.mode == storage.CaseInsensitive {
		for stored := range p.dirs {
			if strings.EqualFold(stored, name) {
				return true
			}
		}
	}

	return false
}

func normalize(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
