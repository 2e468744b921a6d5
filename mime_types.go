package main

import (
	"mime"

	mimedb "gitlab.com/gitlab-org/go-mimedb"
	"gitlab.com/gitlab-org/labkit/log"
)

// extraMIMETypes are types the mimedb database does not carry yet.
var extraMIMETypes = map[string]string{
	".avif": "image/avif",
}

func loadMIMETypes() {
	if err := mimedb.LoadTypes(); err != nil {
		log.WithError(err).Error("failed to load the MIME type database")
	}

	for ext, mimeType := range extraMIMETypes {
		if err := mime.AddExtensionType(ext, mimeType); err != nil {
			log.WithError(err).Errorf("failed to add extension %q with MIME type %q", ext, mimeType)
		}
	}
}
