package server

import "time"

const (
	// DefaultApplicationName is the name used for configuration lookup, the environment prefix, and
	// the startup line when no other name is supplied.
	DefaultApplicationName = "quickstart"

	// LocalMarker is the case-sensitive token which, when contained in the first argument, selects local mode.
	LocalMarker = "LOCAL"

	// LocalHost is the host bound in local mode
	LocalHost = "localhost"

	// LocalPort is the port bound in local mode
	LocalPort = "8080"

	// ProductionHost is the wildcard host bound in production mode
	ProductionHost = "0.0.0.0"

	// PortEnvironmentVariable is the environment variable that supplies the production port
	PortEnvironmentVariable = "PORT"

	// DefaultShutdownTimeout bounds the graceful shutdown performed when the process is signaled
	DefaultShutdownTimeout time.Duration = 15 * time.Second

	// baseURIFormat is the format of the base URI reported at startup
	baseURIFormat = "http://%s:%s/"

	// metricsSuffix is the string appended to the application name to produce the metrics server name
	metricsSuffix = ".metrics"
)
