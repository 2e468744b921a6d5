package mount

import (
	"net/http"

	"gitlab.com/gitlab-org/labkit/errortracking"

	"gitlab.com/webfold/staticserve/internal/logging"
	"gitlab.com/webfold/staticserve/internal/storage"
	"gitlab.com/webfold/staticserve/metrics"
)

// action is the terminal classification of a request. Exactly one is
// produced per request; requests are classified independently with no
// state carried between them.
type action int

const (
	actionPassThrough action = iota
	actionNotFound
	actionServe
)

// method is the closed set of request methods a mount understands.
// Everything else passes through so a downstream handler may answer it.
type method int

const (
	methodOther method = iota
	methodGet
	methodHead
)

func classifyMethod(m string) method {
	switch m {
	case http.MethodGet:
		return methodGet
	case http.MethodHead:
		return methodHead
	default:
		return methodOther
	}
}

// outcome carries the decision for a single request from dispatch to
// the response writer.
type outcome struct {
	action      action
	entry       *storage.Entry
	name        string // remainder path, used for the content type
	includeBody bool
}

// dispatch classifies r. The prefix check runs before the method check:
// a path outside the mount passes through regardless of method. Inside
// the mount, GET and HEAD resolve against storage and anything else
// passes through; a POST to a static path stays answerable elsewhere in
// the chain.
func (m *Mount) dispatch(r *http.Request) outcome {
	rest, ok := matchPrefix(r.URL.Path, m.config.Prefix, m.config.CaseMode)
	if !ok {
		return outcome{action: actionPassThrough}
	}

	meth := classifyMethod(r.Method)
	if meth == methodOther {
		return outcome{action: actionPassThrough}
	}

	entry, err := m.config.Provider.Exists(r.Context(), rest)
	if err != nil {
		// The path is inside the mount, so the mount still owns the
		// response: a failed lookup degrades to a miss.
		m.observeStorageError(r, rest, err)
		return outcome{action: actionNotFound}
	}

	if entry == nil || entry.IsDir {
		return outcome{action: actionNotFound}
	}

	return outcome{
		action:      actionServe,
		entry:       entry,
		name:        rest,
		includeBody: meth == methodGet,
	}
}

func (m *Mount) observeStorageError(r *http.Request, name string, err error) {
	metrics.StorageErrors.Inc()
	errortracking.Capture(err, errortracking.WithRequest(r))
	logging.LogRequest(r).WithField("name", name).WithError(err).Error("storage lookup failed")
}
