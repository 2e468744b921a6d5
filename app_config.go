package main

import (
	"net/http"

	"gitlab.com/webfold/staticserve/internal/storage"
)

type appConfig struct {
	ListenHTTP  []string
	ListenHTTPS []string
	ListenProxy []string

	MetricsAddress string

	Mounts   []mountBinding
	CaseMode storage.CaseMode

	RootCertificate []byte
	RootKey         []byte
	InsecureCiphers bool
	TLSMinVersion   uint16
	TLSMaxVersion   uint16

	HTTP2    bool
	MaxConns int

	DisableCrossOriginRequests bool
	CustomHeaders              http.Header

	LogFormat  string
	LogVerbose bool
}

// mountBinding is one -mount flag: a request path prefix bound to a
// content directory or zip archive.
type mountBinding struct {
	Prefix string
	Source string
}
