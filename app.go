package main

import (
	"crypto/tls"
	"net/http"
	"strings"

	ghandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/gitlab-org/labkit/correlation"
	"golang.org/x/sync/errgroup"

	"gitlab.com/webfold/staticserve/internal/handlers"
	"gitlab.com/webfold/staticserve/internal/httperrors"
	"gitlab.com/webfold/staticserve/internal/logging"
	"gitlab.com/webfold/staticserve/internal/middleware"
	"gitlab.com/webfold/staticserve/internal/mount"
	"gitlab.com/webfold/staticserve/internal/netutil"
	"gitlab.com/webfold/staticserve/internal/storage"
	"gitlab.com/webfold/staticserve/internal/storage/local"
	"gitlab.com/webfold/staticserve/internal/storage/zipfs"
	"gitlab.com/webfold/staticserve/internal/tlsconfig"
	"gitlab.com/webfold/staticserve/metrics"
)

type theApp struct {
	appConfig
	limiter *netutil.Limiter
}

// providerForSource opens the storage provider a mount binding points
// at: a zip archive when the source ends in .zip, a directory otherwise.
func providerForSource(source string, mode storage.CaseMode) (storage.Provider, error) {
	if strings.HasSuffix(source, ".zip") {
		return zipfs.Open(source, mode)
	}

	return local.New(source, mode)
}

// buildHandler assembles the middleware chain: access logging and
// correlation outermost, then custom headers and CORS, then the mounts
// in configuration order, with a canned 404 terminating the chain.
func (a *theApp) buildHandler() (http.Handler, error) {
	var handler http.Handler = httperrors.NotFoundHandler()

	// Wrap back to front so the first configured mount sees a request first.
	for i := len(a.Mounts) - 1; i >= 0; i-- {
		binding := a.Mounts[i]

		provider, err := providerForSource(binding.Source, a.CaseMode)
		if err != nil {
			return nil, err
		}

		m, err := mount.New(mount.Config{
			Prefix:   binding.Prefix,
			Provider: provider,
			CaseMode: a.CaseMode,
		})
		if err != nil {
			return nil, err
		}

		handler = m.Handler(handler)
	}

	handler = middleware.CustomHeaders(handler, a.CustomHeaders)
	handler = handlers.CORS(handler, a.DisableCrossOriginRequests)

	handler, err := logging.AccessLogger(handler, a.LogFormat)
	if err != nil {
		return nil, err
	}

	return correlation.InjectCorrelationID(handler), nil
}

func (a *theApp) tlsConfig() (*tls.Config, error) {
	if len(a.ListenHTTPS) == 0 {
		return nil, nil
	}

	return tlsconfig.Create(a.RootCertificate, a.RootKey, a.InsecureCiphers, a.TLSMinVersion, a.TLSMaxVersion)
}

func (a *theApp) Run() error {
	handler, err := a.buildHandler()
	if err != nil {
		return err
	}

	tlsConfig, err := a.tlsConfig()
	if err != nil {
		return err
	}

	a.limiter = netutil.NewLimiterWithMetrics(
		a.MaxConns,
		metrics.LimitListenerMaxConns,
		metrics.LimitListenerConcurrentConns,
		metrics.LimitListenerWaitingConns,
	)

	var eg errgroup.Group

	for _, addr := range a.ListenHTTP {
		addr := addr
		eg.Go(func() error {
			return a.listenAndServe(listenerConfig{addr: addr, handler: handler})
		})
	}

	for _, addr := range a.ListenHTTPS {
		addr := addr
		eg.Go(func() error {
			return a.listenAndServe(listenerConfig{addr: addr, handler: handler, tlsConfig: tlsConfig})
		})
	}

	// Proxy listeners trust the forwarding proxy for both the client
	// address (PROXY protocol) and the original scheme and host headers.
	proxyHandler := ghandlers.ProxyHeaders(handler)
	for _, addr := range a.ListenProxy {
		addr := addr
		eg.Go(func() error {
			return a.listenAndServe(listenerConfig{addr: addr, handler: proxyHandler, isProxyV2: true})
		})
	}

	if a.MetricsAddress != "" {
		eg.Go(func() error {
			return http.ListenAndServe(a.MetricsAddress, promhttp.Handler())
		})
	}

	return eg.Wait()
}

func runApp(config appConfig) {
	a := theApp{appConfig: config}

	if err := a.Run(); err != nil {
		fatal(err)
	}
}
