package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
	"golang.org/x/net/http2"

	"gitlab.com/webfold/staticserve/internal/netutil"
)

type keepAliveListener struct {
	net.Listener
}

type keepAliveSetter interface {
	SetKeepAlive(bool) error
	SetKeepAlivePeriod(time.Duration) error
}

type listenerConfig struct {
	addr      string
	isProxyV2 bool
	tlsConfig *tls.Config
	handler   http.Handler
}

func (ln *keepAliveListener) Accept() (net.Conn, error) {
	conn, err := ln.Listener.Accept()
	if err != nil {
		return nil, err
	}

	if kc, ok := conn.(keepAliveSetter); ok {
		kc.SetKeepAlive(true)
		kc.SetKeepAlivePeriod(3 * time.Minute)
	}

	return conn, nil
}

func (a *theApp) listenAndServe(config listenerConfig) error {
	server := &http.Server{Handler: config.handler, TLSConfig: config.tlsConfig}

	if a.HTTP2 {
		err := http2.ConfigureServer(server, &http2.Server{})
		if err != nil {
			return err
		}
	}

	l, err := net.Listen("tcp", config.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", config.addr, err)
	}

	if a.limiter != nil {
		l = netutil.SharedLimitListener(l, a.limiter)
	}

	l = &keepAliveListener{l}

	if config.isProxyV2 {
		l = &proxyproto.Listener{
			Listener: l,
			Policy: func(upstream net.Addr) (proxyproto.Policy, error) {
				return proxyproto.REQUIRE, nil
			},
		}
	}

	if config.tlsConfig != nil {
		l = tls.NewListener(l, server.TLSConfig)
	}

	return server.Serve(l)
}
