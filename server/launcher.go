package server

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/example/quickstart/logging"
	"github.com/example/quickstart/logging/logginghttp"
	"github.com/example/quickstart/resource"
	"github.com/example/quickstart/xhttp"
	"github.com/example/quickstart/xlistener"
	"github.com/example/quickstart/xmetrics"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Launcher builds and starts the HTTP server for a single application resource.  All fields are
// optional, though a production launch requires a Viper instance which supplies PortKey.
type Launcher struct {
	// Name is the application name reported at startup.  DefaultApplicationName is used if unset.
	Name string

	// Viper is the configuration source for the production port.  NewViper produces an appropriate instance.
	Viper *viper.Viper

	// Configuration holds the optional server settings.  If nil, every setting takes its default.
	Configuration *Configuration

	// Logger is the go-kit logger for the server.  If unset, logging.DefaultLogger() is used.
	Logger log.Logger

	// Registry is the metrics registry, which must contain the metrics from Metrics.  If unset,
	// a registry is created for each server that is built.
	Registry xmetrics.Registry

	// Resource is the single application resource.  If unset, resource.Default() is used.
	Resource resource.Resource

	// Stdout receives the startup line.  If unset, os.Stdout is used.
	Stdout io.Writer
}

func (l *Launcher) name() string {
	if len(l.Name) > 0 {
		return l.Name
	}

	return DefaultApplicationName
}

func (l *Launcher) logger() log.Logger {
	if l.Logger != nil {
		return l.Logger
	}

	return logging.DefaultLogger()
}

func (l *Launcher) resource() resource.Resource {
	if l.Resource != nil {
		return l.Resource
	}

	return resource.Default()
}

func (l *Launcher) stdout() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}

	return os.Stdout
}

func (l *Launcher) configuration() *Configuration {
	if l.Configuration != nil {
		return l.Configuration
	}

	return new(Configuration)
}

func (l *Launcher) registry() (xmetrics.Registry, error) {
	if l.Registry != nil {
		return l.Registry, nil
	}

	c := l.configuration()
	return xmetrics.NewRegistry(&xmetrics.Options{
		Namespace: c.Metrics.Namespace,
		Subsystem: c.Metrics.Subsystem,
		Metrics:   Metrics(),
	})
}

// NewHandler registers the resource on a fresh router and decorates that router with the
// server's middleware.  In Local mode, every response is decorated with the CORS headers.
func (l *Launcher) NewHandler(mode Mode, r xmetrics.Registry) (http.Handler, error) {
	router := mux.NewRouter()
	if err := l.resource().Register(router); err != nil {
		return nil, &RegistrationError{Err: err}
	}

	c := l.configuration()
	chain := alice.New(logginghttp.PopulateLogger(l.logger())).Extend(instrument(r))
	if mode == Local {
		chain = chain.Append(xhttp.CORS())
	}

	chain = chain.Append(xhttp.Busy(c.MaxConcurrentRequests))
	if c.Tracing {
		operation := l.name()
		chain = chain.Append(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, operation)
		})
	}

	return chain.Then(router), nil
}

// listen binds a server's address, instrumenting the listener with that server's connection metrics
func (l *Launcher) listen(serverName, address string, maxConnections int, r xmetrics.Registry, logger log.Logger) (net.Listener, error) {
	listener, err := xlistener.New(xlistener.Options{
		Logger:         logger,
		MaxConnections: maxConnections,
		Rejected:       r.NewCounter(RejectedConnections).With(ServerLabel, serverName),
		Active:         r.NewGauge(ActiveConnections).With(ServerLabel, serverName),
		Address:        address,
	})

	if err != nil {
		return nil, &BindError{Address: address, Err: err}
	}

	return listener, nil
}

// Build starts a server in the given mode.  Configuration and registration failures are reported before any
// socket is bound.  A nil error means the server is bound and accepting connections, and the startup line
// has been written.
func (l *Launcher) Build(mode Mode) (*Server, error) {
	var (
		name   = l.name()
		c      = l.configuration()
		logger = log.With(l.logger(), xhttp.ServerKey(), name)
	)

	address, err := DeriveListenAddress(mode, l.Viper)
	if err != nil {
		return nil, err
	}

	registry, err := l.registry()
	if err != nil {
		return nil, err
	}

	handler, err := l.NewHandler(mode, registry)
	if err != nil {
		return nil, err
	}

	listener, err := l.listen(name, address.String(), c.MaxConnections, registry, logger)
	if err != nil {
		return nil, err
	}

	var (
		metricsListener net.Listener
		metricsName     = name + metricsSuffix
		metricsLogger   = log.With(l.logger(), xhttp.ServerKey(), metricsName)
	)

	if len(c.Metrics.Address) > 0 {
		metricsListener, err = l.listen(metricsName, c.Metrics.Address, 0, registry, metricsLogger)
		if err != nil {
			listener.Close()
			return nil, err
		}
	}

	s := &Server{
		name:    name,
		logger:  logger,
		address: listener.Addr(),
		errs:    make(chan error, 1),
	}

	_, boundPort, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		boundPort = address.Port
	}

	s.baseURI = ListenAddress{Host: address.Host, Port: boundPort}.BaseURI()

	so := c.serverOptions()
	so.Logger = logger
	so.Address = listener.Addr().String()
	so.Listener = listener
	s.primary = s.serve(so, handler)

	if metricsListener != nil {
		mo := xhttp.ServerOptions{
			Logger:   metricsLogger,
			Address:  metricsListener.Addr().String(),
			Listener: metricsListener,
		}

		s.metricsAddress = metricsListener.Addr()
		s.metrics = s.serve(mo, metricsHandler(registry, xhttp.NewServerLogger(metricsLogger)))
	}

	fmt.Fprintf(l.stdout(), "%s started at %s\n", name, s.baseURI)
	logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "server started", "mode", mode, "baseURI", s.baseURI)
	return s, nil
}
