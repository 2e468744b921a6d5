package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ServedFiles counts files served, partitioned by request method.
	ServedFiles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "staticserve_served_files_total",
		Help: "The total number of files served, by request method",
	}, []string{"method"})

	// PassThrough counts requests handed to the next handler in the chain.
	PassThrough = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "staticserve_passthrough_total",
		Help: "The total number of requests passed through to the next handler",
	})

	// NotFound counts requests inside a mount that matched no file.
	NotFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "staticserve_not_found_total",
		Help: "The total number of requests answered with 404",
	})

	// StorageErrors counts storage lookups that failed. Failed lookups
	// are answered as not-found; this counter keeps them observable.
	StorageErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "staticserve_storage_errors_total",
		Help: "The total number of storage lookups that failed",
	})

	// ServingFileSize records the size of files served.
	ServingFileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "staticserve_serving_file_size_bytes",
		Help:    "The size in bytes of files served",
		Buckets: prometheus.ExponentialBuckets(256, 4, 10),
	})

	// LimitListenerMaxConns reports the configured shared connection limit.
	LimitListenerMaxConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "staticserve_limit_listener_max_conns",
		Help: "The configured connection limit shared across listeners",
	})

	// LimitListenerConcurrentConns reports connections currently in flight.
	LimitListenerConcurrentConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "staticserve_limit_listener_concurrent_conns",
		Help: "The number of connections currently being served",
	})

	// LimitListenerWaitingConns reports accepts blocked on the limiter.
	LimitListenerWaitingConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "staticserve_limit_listener_waiting_conns",
		Help: "The number of accepts waiting for a connection slot",
	})
)

func init() {
	prometheus.MustRegister(ServedFiles)
	prometheus.MustRegister(PassThrough)
	prometheus.MustRegister(NotFound)
	prometheus.MustRegister(StorageErrors)
	prometheus.MustRegister(ServingFileSize)
	prometheus.MustRegister(LimitListenerMaxConns)
	prometheus.MustRegister(LimitListenerConcurrentConns)
	prometheus.MustRegister(LimitListenerWaitingConns)
}
