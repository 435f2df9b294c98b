package server

import (
	"time"

	"github.com/example/quickstart/logging"
	"github.com/example/quickstart/xhttp"
	"github.com/example/quickstart/xmetrics"
	"github.com/example/quickstart/xviper"
	"github.com/spf13/viper"
)

const (
	LogKey                   = "log"
	LogLevelKey              = "log.level"
	MaxConnectionsKey        = "maxConnections"
	MaxConcurrentRequestsKey = "maxConcurrentRequests"
	ReadTimeoutKey           = "readTimeout"
	ReadHeaderTimeoutKey     = "readHeaderTimeout"
	WriteTimeoutKey          = "writeTimeout"
	IdleTimeoutKey           = "idleTimeout"
	MaxHeaderBytesKey        = "maxHeaderBytes"
	DisableKeepAlivesKey     = "disableKeepAlives"
	ShutdownTimeoutKey       = "shutdownTimeout"
	MetricsAddressKey        = "metrics.address"
	MetricsNamespaceKey      = "metrics.namespace"
	MetricsSubsystemKey      = "metrics.subsystem"
	TracingKey               = "tracing"
)

// MetricsConfiguration describes the optional metrics listener and the naming of the server's metrics.
type MetricsConfiguration struct {
	// Address is the host:port of the metrics listener.  If empty, no metrics listener is started.
	Address string

	// Namespace is the Prometheus namespace of the server's metrics
	Namespace string

	// Subsystem is the Prometheus subsystem of the server's metrics
	Subsystem string
}

// Configuration holds the optional settings of a launcher.  None of these settings is required:
// the zero value of each field means the net/http or package default.
type Configuration struct {
	Log logging.Options

	// MaxConnections caps the number of active connections.  A nonpositive value means no limit.
	MaxConnections int

	// MaxConcurrentRequests caps the number of requests handled at once.  A nonpositive value means no limit.
	MaxConcurrentRequests int

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	DisableKeepAlives bool

	// ShutdownTimeout bounds the graceful shutdown.  A nonpositive value means DefaultShutdownTimeout.
	ShutdownTimeout time.Duration

	Metrics MetricsConfiguration

	// Tracing enables an OpenTelemetry span for each request
	Tracing bool
}

// shutdownTimeout returns the effective graceful shutdown bound
func (c *Configuration) shutdownTimeout() time.Duration {
	if c != nil && c.ShutdownTimeout > 0 {
		return c.ShutdownTimeout
	}

	return DefaultShutdownTimeout
}

// serverOptions produces the xhttp options for the primary server
func (c *Configuration) serverOptions() xhttp.ServerOptions {
	if c == nil {
		return xhttp.ServerOptions{}
	}

	return xhttp.ServerOptions{
		ReadTimeout:       c.ReadTimeout,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		WriteTimeout:      c.WriteTimeout,
		IdleTimeout:       c.IdleTimeout,
		MaxHeaderBytes:    c.MaxHeaderBytes,
		DisableKeepAlives: c.DisableKeepAlives,
	}
}

// SetDefaults establishes the default value of every configuration key.  Every key needs a default
// so that automatic environment overrides are visible when the configuration is unmarshaled.
func SetDefaults(v *viper.Viper) {
	xviper.Configure(v, xviper.ApplyDefaults(xviper.Defaults{
		LogLevelKey:              logging.LevelAll,
		LogKey + ".file":         logging.StdoutFile,
		LogKey + ".json":         false,
		LogKey + ".maxsize":      0,
		LogKey + ".maxage":       0,
		LogKey + ".maxbackups":   0,
		MaxConnectionsKey:        0,
		MaxConcurrentRequestsKey: 0,
		ReadTimeoutKey:           time.Duration(0),
		ReadHeaderTimeoutKey:     time.Duration(0),
		WriteTimeoutKey:          time.Duration(0),
		IdleTimeoutKey:           time.Duration(0),
		MaxHeaderBytesKey:        0,
		DisableKeepAlivesKey:     false,
		ShutdownTimeoutKey:       DefaultShutdownTimeout,
		MetricsAddressKey:        "",
		MetricsNamespaceKey:      DefaultApplicationName,
		MetricsSubsystemKey:      xmetrics.DefaultSubsystem,
		TracingKey:               false,
	}))
}

// NewConfiguration unmarshals a Configuration from the given Viper instance.  Durations may be
// written either as Go duration strings, e.g. "30s", or as integer nanoseconds.
func NewConfiguration(v *viper.Viper) (*Configuration, error) {
	c := new(Configuration)
	if err := xviper.Unmarshal(v, c); err != nil {
		return nil, &ConfigurationError{
			Key:    "configuration",
			Reason: err.Error(),
			Err:    err,
		}
	}

	return c, nil
}
