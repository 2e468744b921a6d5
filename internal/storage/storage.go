package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotReadable is returned when Read is called on an entry that has
// no byte stream, such as a directory.
var ErrNotReadable = errors.New("storage: entry is not readable")

// CaseMode controls how a provider compares path names during lookups.
type CaseMode int

const (
	// CaseSensitive compares path names byte for byte.
	CaseSensitive CaseMode = iota

	// CaseInsensitive compares path names ignoring ASCII case. It is
	// meant for content produced on filesystems that are themselves
	// case-insensitive.
	CaseInsensitive
)

func (m CaseMode) String() string {
	if m == CaseInsensitive {
		return "case-insensitive"
	}

	return "case-sensitive"
}

// File is an open file returned by a provider. It will typically become
// the response body of a request.
type File interface {
	io.ReadCloser
}

// Entry describes an object a provider found during a lookup.
type Entry struct {
	// Size is the object's length in bytes. It is zero for directories.
	Size int64

	// IsDir reports whether the object is a directory.
	IsDir bool

	// Open obtains a byte stream bound to the object's contents at
	// lookup time. It is nil for directories.
	Open func(ctx context.Context) (File, error)
}

// Read opens the entry's byte stream. It fails for entries that carry
// no stream instead of panicking on a nil Open.
func (e *Entry) Read(ctx context.Context) (File, error) {
	if e.Open == nil {
		return nil, ErrNotReadable
	}

	return e.Open(ctx)
}

// Provider is the capability a mount uses to check existence and read
// file contents. Implementations must be safe for concurrent use by
// multiple in-flight requests; the access pattern is read-only.
type Provider interface {
	// Exists looks up name, a slash-separated path relative to the
	// provider's root. A nil Entry with a nil error means the object is
	// absent. A non-nil error describes a lookup failure, never plain
	// absence.
	Exists(ctx context.Context, name string) (*Entry, error)
}
