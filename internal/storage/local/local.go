// Package local implements a storage provider rooted at a directory on
// the local filesystem. Lookups never escape the root directory and
// opened files never follow symlinks.
package local

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"gitlab.com/webfold/staticserve/internal/storage"
)

// Provider serves lookups from a directory tree.
type Provider struct {
	root string
	mode storage.CaseMode
}

// New returns a Provider rooted at dir. It fails fast when dir does not
// exist or is not a directory, so a misconfigured mount is caught at
// construction time rather than on the first request.
func New(dir string, mode storage.CaseMode) (*Provider, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	fi, err := os.Lstat(root)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("local: %q is not a directory", dir)
	}

	return &Provider{root: root, mode: mode}, nil
}

// Exists implements storage.Provider.
func (p *Provider) Exists(ctx context.Context, name string) (*storage.Entry, error) {
	fullPath, err := p.fullPath(name)
	if err != nil {
		return nil, err
	}

	if p.mode == storage.CaseInsensitive {
		fullPath, err = p.resolveCase(fullPath)
		if err != nil {
			return nil, err
		}
	}

	fi, err := os.Lstat(fullPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		return &storage.Entry{IsDir: true}, nil
	}

	// Symlinks, devices and other special files are never served.
	if !fi.Mode().IsRegular() {
		return nil, nil
	}

	return &storage.Entry{
		Size: fi.Size(),
		Open: func(ctx context.Context) (storage.File, error) {
			return os.OpenFile(fullPath, os.O_RDONLY|unix.O_NOFOLLOW, 0)
		},
	}, nil
}

// fullPath maps a lookup name onto the filesystem and rejects anything
// that resolves outside the provider root.
func (p *Provider) fullPath(name string) (string, error) {
	fullPath := filepath.Join(p.root, filepath.FromSlash(path.Clean("/"+name)))

	if fullPath != p.root && !strings.HasPrefix(fullPath, p.root+string(filepath.Separator)) {
		return "", fmt.Errorf("local: %q should be in %q", fullPath, p.root)
	}

	return fullPath, nil
}

// resolveCase maps fullPath onto an existing path that matches it
// ignoring ASCII case. Each missing path segment is resolved with a
// directory scan; the first folded match wins. A segment without any
// match is returned unchanged so the caller reports plain absence.
func (p *Provider) resolveCase(fullPath string) (string, error) {
	if _, err := os.Lstat(fullPath); err == nil {
		return fullPath, nil
	}

	rel, err := filepath.Rel(p.root, fullPath)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return fullPath, nil
	}

	resolved := p.root
	for _, segment := range strings.Split(rel, string(filepath.Separator)) {
		candidate := filepath.Join(resolved, segment)
		if _, err := os.Lstat(candidate); err == nil {
			resolved = candidate
			continue
		}

		entries, err := os.ReadDir(resolved)
		if err != nil {
			return "", err
		}

		match := ""
		for _, entry := range entries {
			if strings.EqualFold(entry.Name(), segment) {
				match = entry.Name()
				break
			}
		}

		if match == "" {
			return candidate, nil
		}

		resolved = filepath.Join(resolved, match)
	}

	return resolved, nil
}
