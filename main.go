package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/namsral/flag"
	log "github.com/sirupsen/logrus"

	"gitlab.com/webfold/staticserve/internal/logging"
	"gitlab.com/webfold/staticserve/internal/middleware"
	"gitlab.com/webfold/staticserve/internal/storage"
	"gitlab.com/webfold/staticserve/internal/tlsconfig"
)

// VERSION stores the information about the semantic version of application
var VERSION = "dev"

// REVISION stores the information about the git revision of application
var REVISION = "HEAD"

func init() {
	flag.Var(&listenHTTP, "listen-http", "The address(es) to listen on for HTTP requests")
	flag.Var(&listenHTTPS, "listen-https", "The address(es) to listen on for HTTPS requests")
	flag.Var(&listenProxy, "listen-proxy", "The address(es) to listen on for proxy protocol requests")
	flag.Var(&mounts, "mount", "A mount in the form prefix=directory or prefix=archive.zip, e.g. /assets=public. Can be given multiple times; earlier mounts win")
	flag.Var(&header, "header", "The additional http header(s) that should be sent to the client")
}

var (
	rootCert        = flag.String("root-cert", "", "The path to the certificate used by HTTPS listeners")
	rootKey         = flag.String("root-key", "", "The path to the key used by HTTPS listeners")
	useHTTP2        = flag.Bool("use-http2", true, "Enable HTTP2 support")
	contentRoot     = flag.String("content-root", "shared/static", "The directory served when no -mount is given")
	caseInsensitive = flag.Bool("case-insensitive", defaultCaseInsensitive(), "Compare request paths and file names ignoring ASCII case")
	metricsAddress  = flag.String("metrics-address", "", "The address to listen on for metrics requests")
	logFormat       = flag.String("log-format", "text", "The log output format: 'text' or 'json'")
	logVerbose      = flag.Bool("log-verbose", false, "Verbose logging")
	maxConns        = flag.Int("max-conns", 5000, "Limit on the number of concurrent connections to the HTTP, HTTPS or proxy listeners")
	insecureCiphers = flag.Bool("insecure-ciphers", false, "Use default list of cipher suites, may contain insecure ones like 3DES and RC4")
	tlsMinVersion   = flag.String("tls-min-version", "tls1.2", tlsconfig.FlagUsage("min"))
	tlsMaxVersion   = flag.String("tls-max-version", "", tlsconfig.FlagUsage("max"))

	disableCrossOriginRequests = flag.Bool("disable-cross-origin-requests", false, "Disable cross-origin requests")

	showVersion = flag.Bool("version", false, "Show version")

	// See init()
	listenHTTP  MultiStringFlag
	listenHTTPS MultiStringFlag
	listenProxy MultiStringFlag
	mounts      MultiStringFlag
	header      MultiStringFlag
)

var (
	errNoListener       = errors.New("at least one of listen-http, listen-https or listen-proxy must be given")
	errNoCertificate    = errors.New("root-cert and root-key must be given when listen-https is used")
	errInvalidMaxConns  = errors.New("max-conns must be greater than 0")
	errInvalidLogFormat = errors.New("log-format must be 'text' or 'json'")
)

func defaultCaseInsensitive() bool {
	// Storage on these platforms is itself case-insensitive by default.
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	default:
		return false
	}
}

func splitMountBinding(value string) (mountBinding, error) {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 || parts[1] == "" {
		return mountBinding{}, fmt.Errorf("invalid mount %q, expected prefix=directory", value)
	}

	prefix := parts[0]
	if prefix != "" && (!strings.HasPrefix(prefix, "/") || strings.HasSuffix(prefix, "/")) {
		return mountBinding{}, fmt.Errorf("invalid mount prefix %q, must be empty or start with / and not end with /", prefix)
	}

	return mountBinding{Prefix: prefix, Source: parts[1]}, nil
}

func configFromFlags() (appConfig, error) {
	var result *multierror.Error

	config := appConfig{
		ListenHTTP:  listenHTTP.Split(),
		ListenHTTPS: listenHTTPS.Split(),
		ListenProxy: listenProxy.Split(),

		MetricsAddress: *metricsAddress,

		HTTP2:    *useHTTP2,
		MaxConns: *maxConns,

		DisableCrossOriginRequests: *disableCrossOriginRequests,

		LogFormat:  *logFormat,
		LogVerbose: *logVerbose,
	}

	config.CaseMode = storage.CaseSensitive
	if *caseInsensitive {
		config.CaseMode = storage.CaseInsensitive
	}

	for _, value := range mounts {
		binding, err := splitMountBinding(value)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		config.Mounts = append(config.Mounts, binding)
	}
	if len(config.Mounts) == 0 {
		config.Mounts = []mountBinding{{Prefix: "", Source: *contentRoot}}
	}

	if len(config.ListenHTTP)+len(config.ListenHTTPS)+len(config.ListenProxy) == 0 {
		result = multierror.Append(result, errNoListener)
	}

	if config.MaxConns < 1 {
		result = multierror.Append(result, errInvalidMaxConns)
	}

	if config.LogFormat != "text" && config.LogFormat != "json" {
		result = multierror.Append(result, errInvalidLogFormat)
	}

	if err := tlsconfig.ValidateTLSVersions(*tlsMinVersion, *tlsMaxVersion); err != nil {
		result = multierror.Append(result, err)
	} else {
		config.TLSMinVersion = tlsconfig.AllTLSVersions[*tlsMinVersion]
		config.TLSMaxVersion = tlsconfig.AllTLSVersions[*tlsMaxVersion]
	}
	config.InsecureCiphers = *insecureCiphers

	if len(config.ListenHTTPS) > 0 {
		if *rootCert == "" || *rootKey == "" {
			result = multierror.Append(result, errNoCertificate)
		} else {
			if err := readKeyPair(&config); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	headers, err := middleware.ParseHeaderString(header.Split())
	if err != nil {
		result = multierror.Append(result, err)
	}
	config.CustomHeaders = headers

	return config, result.ErrorOrNil()
}

func readKeyPair(config *appConfig) error {
	cert, err := os.ReadFile(*rootCert)
	if err != nil {
		return err
	}

	key, err := os.ReadFile(*rootKey)
	if err != nil {
		return err
	}

	config.RootCertificate = cert
	config.RootKey = key

	return nil
}

func fatal(err error) {
	log.WithError(err).Fatal()
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", VERSION, REVISION)
		return
	}

	if err := logging.ConfigureLogging(*logFormat, *logVerbose); err != nil {
		fatal(err)
	}

	loadMIMETypes()

	config, err := configFromFlags()
	if err != nil {
		fatal(err)
	}

	runApp(config)
}
