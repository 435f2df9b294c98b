package logginghttp

import (
	"net/http"

	"github.com/example/quickstart/logging"
	"github.com/felixge/httpsnoop"
	"github.com/go-kit/log"
	"github.com/segmentio/ksuid"
)

var (
	requestIDKey     interface{} = "requestID"
	requestProtoKey  interface{} = "requestProto"
	requestMethodKey interface{} = "requestMethod"
	requestURIKey    interface{} = "requestURI"
	remoteAddrKey    interface{} = "remoteAddr"
)

// RequestIDKey returns the contextual logging key for the unique id generated for each request
func RequestIDKey() interface{} {
	return requestIDKey
}

// RequestProtoKey returns the contextual logging key for an HTTP request's protocol
func RequestProtoKey() interface{} {
	return requestProtoKey
}

// RequestMethodKey returns the contextual logging key for an HTTP request's method
func RequestMethodKey() interface{} {
	return requestMethodKey
}

// RequestURIKey returns the contextual logging key for an HTTP request's unmodified URI
func RequestURIKey() interface{} {
	return requestURIKey
}

// RemoteAddrKey returns the contextual logging key for an HTTP request's remote address,
// as filled in by the enclosing http.Server.
func RemoteAddrKey() interface{} {
	return remoteAddrKey
}

// PopulateLogger produces an Alice-style decorator that emits a decorated go-kit logger into the request context.
// The supplied base go-kit Logger is decorated for each request with a fresh ksuid and information about the request.
// Downstream code can then use this logger via logging.GetLogger(request.Context()).
//
// Once the decorated handler returns, a debug entry with the response code and duration is written.
// Nothing is added to the response.
//
// If the base parameter is not supplied, the default logger is decorated for each request.
func PopulateLogger(base log.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = logging.DefaultLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, request *http.Request) {
			logger := log.With(
				base,
				requestIDKey, ksuid.New().String(),
				requestProtoKey, request.Proto,
				requestMethodKey, request.Method,
				requestURIKey, request.RequestURI,
				remoteAddrKey, request.RemoteAddr,
			)

			m := httpsnoop.CaptureMetrics(next, rw, request.WithContext(logging.WithLogger(request.Context(), logger)))
			logging.Debug(logger).Log(
				logging.MessageKey(), "request handled",
				"code", m.Code,
				"duration", m.Duration,
				"written", m.Written,
			)
		})
	}
}
