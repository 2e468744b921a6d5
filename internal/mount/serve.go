package mount

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"gitlab.com/gitlab-org/labkit/errortracking"

	"gitlab.com/webfold/staticserve/internal/contenttype"
	"gitlab.com/webfold/staticserve/internal/httperrors"
	"gitlab.com/webfold/staticserve/internal/logging"
	"gitlab.com/webfold/staticserve/internal/storage"
	"gitlab.com/webfold/staticserve/metrics"
)

// Handler returns the middleware handler for this mount. Requests the
// mount does not own are passed to next untouched.
func (m *Mount) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("handler panic: %v", rec)
				errortracking.Capture(err, errortracking.WithRequest(r), errortracking.WithStackTrace())
				logging.LogRequest(r).WithError(err).Error("recovered from panic")
				httperrors.Serve500(w)
			}
		}()

		o := m.dispatch(r)

		switch o.action {
		case actionPassThrough:
			metrics.PassThrough.Inc()
			next.ServeHTTP(w, r)
		case actionNotFound:
			metrics.NotFound.Inc()
			httperrors.Serve404(w)
		case actionServe:
			m.serve(w, r, o)
		}
	})
}

// serve writes the file response. The status line and headers are fully
// committed before any body byte; Content-Length is exact for GET and
// HEAD alike, and HEAD sends zero body bytes.
func (m *Mount) serve(w http.ResponseWriter, r *http.Request, o outcome) {
	var file storage.File
	if o.includeBody {
		f, err := o.entry.Read(r.Context())
		if err != nil {
			// The entry vanished between lookup and open.
			m.observeStorageError(r, o.name, err)
			metrics.NotFound.Inc()
			httperrors.Serve404(w)
			return
		}
		file = f
		defer file.Close()
	}

	if contentType := contenttype.Resolve(path.Ext(o.name)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(o.entry.Size, 10))

	metrics.ServedFiles.WithLabelValues(r.Method).Inc()
	metrics.ServingFileSize.Observe(float64(o.entry.Size))

	w.WriteHeader(http.StatusOK)

	if file == nil {
		return
	}

	if _, err := io.CopyN(w, file, o.entry.Size); err != nil {
		// The status line is already on the wire; a client that went
		// away mid-body lands here routinely.
		logging.LogRequest(r).WithError(err).Debug("failed to write response body")
	}
}
