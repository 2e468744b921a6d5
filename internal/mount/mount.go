// Package mount implements a static-file middleware. A mount binds a
// request path prefix to a storage provider: requests under the prefix
// are resolved against the provider and served, everything else is
// handed to the next handler in the chain untouched.
package mount

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-multierror"

	"gitlab.com/webfold/staticserve/internal/storage"
)

var (
	errNilProvider   = errors.New("mount: storage provider must not be nil")
	errInvalidPrefix = errors.New("mount: prefix must be empty or start with / and not end with /")
)

// Config describes one mount. It is immutable after New; a pipeline may
// carry any number of mounts.
type Config struct {
	// Prefix is the request path prefix the mount answers for, without
	// a trailing slash. Empty means the mount answers for every path.
	Prefix string

	// Provider performs existence checks and reads.
	Provider storage.Provider

	// CaseMode controls the prefix comparison. The provider applies its
	// own case rules to the remainder path.
	CaseMode storage.CaseMode
}

// Mount is the middleware instance created from a Config.
type Mount struct {
	config Config
}

// New validates config and returns a Mount. Configuration problems are
// reported together and fail fast, before the mount sees any request.
func New(config Config) (*Mount, error) {
	var result *multierror.Error

	if config.Provider == nil {
		result = multierror.Append(result, errNilProvider)
	}

	if config.Prefix != "" &&
		(!strings.HasPrefix(config.Prefix, "/") || strings.HasSuffix(config.Prefix, "/")) {
		result = multierror.Append(result, errInvalidPrefix)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Mount{config: config}, nil
}
