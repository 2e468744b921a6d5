// Package inmem implements a map-backed storage provider. It backs
// tests and embedded fixtures where no filesystem is available.
package inmem

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"gitlab.com/webfold/staticserve/internal/storage"
)

// Provider holds file contents in memory. Populate it with Put before
// serving begins; lookups afterwards are read-only and safe for
// concurrent use.
type Provider struct {
	mode  storage.CaseMode
	files map[string][]byte
	dirs  map[string]struct{}
}

// New returns an empty Provider comparing names according to mode.
func New(mode storage.CaseMode) *Provider {
	return &Provider{
		mode:  mode,
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

// Put registers contents under name. Parent directories are implied.
func (p *Provider) Put(name string, contents []byte) {
	name = normalize(name)
	p.files[name] = contents

	for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
		p.dirs[dir] = struct{}{}
	}
}

// Exists implements storage.Provider.
func (p *Provider) Exists(ctx context.Context, name string) (*storage.Entry, error) {
	name = normalize(name)

	if name == "" {
		return &storage.Entry{IsDir: true}, nil
	}

	if contents, ok := p.lookupFile(name); ok {
		return &storage.Entry{
			Size: int64(len(contents)),
			Open: func(ctx context.Context) (storage.File, error) {
				return io.NopCloser(bytes.NewReader(contents)), nil
			},
		}, nil
	}

	if p.lookupDir(name) {
		return &storage.Entry{IsDir: true}, nil
	}

	return nil, nil
}

func (p *Provider) lookupFile(name string) ([]byte, bool) {
	if contents, ok := p.files[name]; ok {
		return contents, true
	}

	if p.mode == storage.CaseInsensitive {
		for stored, contents := range p.files {
			if strings.EqualFold(stored, name) {
				return contents, true
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
