package server

import (
	"net/http"

	"github.com/example/quickstart/xmetrics"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath is the path on the metrics listener which serves the registry
const MetricsPath = "/metrics"

const (
	APIRequestsTotal    = "api_requests_total"
	InFlightRequests    = "in_flight_requests"
	RequestDuration     = "request_duration_seconds"
	RequestSize         = "request_size_bytes"
	ResponseSize        = "response_size_bytes"
	ActiveConnections   = "active_connections"
	RejectedConnections = "rejected_connections_total"

	ServerLabel = "server"
	CodeLabel   = "code"
	MethodLabel = "method"

	sizeBucketStart  = 64
	sizeBucketFactor = 4
	sizeBucketCount  = 8
)

// Metrics is the module function for the server's metrics
func Metrics() []xmetrics.Metric {
	sizeBuckets := prometheus.ExponentialBuckets(sizeBucketStart, sizeBucketFactor, sizeBucketCount)

	return []xmetrics.Metric{
		{
			Name:       APIRequestsTotal,
			Type:       xmetrics.CounterType,
			Help:       "A counter for requests to the handler",
			LabelNames: []string{CodeLabel, MethodLabel},
		},
		{
			Name: InFlightRequests,
			Type: xmetrics.GaugeType,
			Help: "A gauge of requests currently being served by the handler",
		},
		{
			Name:    RequestDuration,
			Type:    xmetrics.HistogramType,
			Help:    "A histogram of latencies for requests",
			Buckets: prometheus.DefBuckets,
		},
		{
			Name:    RequestSize,
			Type:    xmetrics.HistogramType,
			Help:    "A histogram of request sizes for requests",
			Buckets: sizeBuckets,
		},
		{
			Name:    ResponseSize,
			Type:    xmetrics.HistogramType,
			Help:    "A histogram of response sizes for requests",
			Buckets: sizeBuckets,
		},
		{
			Name:       ActiveConnections,
			Type:       xmetrics.GaugeType,
			Help:       "The number of active connections associated with each server",
			LabelNames: []string{ServerLabel},
		},
		{
			Name:       RejectedConnections,
			Type:       xmetrics.CounterType,
			Help:       "The total number of connections rejected due to exceeding the limit on active connections",
			LabelNames: []string{ServerLabel},
		},
	}
}

// instrument returns the Prometheus instrumentation chain for the primary server.  The registry
// must have been created with Metrics.
func instrument(r xmetrics.Registry) alice.Chain {
	return alice.New(
		func(next http.Handler) http.Handler {
			return promhttp.InstrumentHandlerInFlight(r.NewGaugeVec(InFlightRequests).WithLabelValues(), next)
		},
		func(next http.Handler) http.Handler {
			return promhttp.InstrumentHandlerCounter(r.NewCounterVec(APIRequestsTotal), next)
		},
		func(next http.Handler) http.Handler {
			return promhttp.InstrumentHandlerDuration(r.NewHistogramVec(RequestDuration), next)
		},
		func(next http.Handler) http.Handler {
			return promhttp.InstrumentHandlerRequestSize(r.NewHistogramVec(RequestSize), next)
		},
		func(next http.Handler) http.Handler {
			return promhttp.InstrumentHandlerResponseSize(r.NewHistogramVec(ResponseSize), next)
		},
	)
}

// metricsHandler serves the registry's metric families, logging encoding failures through the
// server's error log.
func metricsHandler(r xmetrics.Registry, errorLog promhttp.Logger) http.Handler {
	router := mux.NewRouter()
	router.Handle(
		MetricsPath,
		promhttp.HandlerFor(r, promhttp.HandlerOpts{
			ErrorLog:      errorLog,
			ErrorHandling: promhttp.ContinueOnError,
		}),
	).Methods(http.MethodGet)

	return router
}
