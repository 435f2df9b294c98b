package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/example/quickstart/logging"
	"github.com/example/quickstart/xhttp"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// servingServer is a running http.Server along with a channel that is closed once it stops serving
type servingServer struct {
	*http.Server
	done chan struct{}
}

// Server is the handle to a running server produced by Launcher.Build
type Server struct {
	name           string
	baseURI        string
	logger         log.Logger
	address        net.Addr
	metricsAddress net.Addr
	primary        *servingServer
	metrics        *servingServer
	errs           chan error
}

// Name returns the application name of this server
func (s *Server) Name() string {
	return s.name
}

// Addr returns the bound address of the primary listener
func (s *Server) Addr() net.Addr {
	return s.address
}

// MetricsAddr returns the bound address of the metrics listener, or nil if none was configured
func (s *Server) MetricsAddr() net.Addr {
	return s.metricsAddress
}

// BaseURI returns the URI reported at startup
func (s *Server) BaseURI() string {
	return s.baseURI
}

// Err returns a channel which receives the first serve failure.  A server that is shut down
// normally never sends on this channel.
func (s *Server) Err() <-chan error {
	return s.errs
}

// serve starts an http.Server in its own goroutine
func (s *Server) serve(o xhttp.ServerOptions, handler http.Handler) *servingServer {
	ss := &servingServer{
		Server: xhttp.NewServer(o, handler),
		done:   make(chan struct{}),
	}

	starter := xhttp.NewStarter(o.StartOptions(), ss.Server)
	go func() {
		defer close(ss.done)
		if err := starter(); !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errs <- err:
			default:
			}
		}
	}()

	return ss
}

// Shutdown gracefully stops the metrics server, if any, and then the primary server.  It returns
// once both have stopped serving or the context ends.
func (s *Server) Shutdown(ctx context.Context) error {
	var result error
	for _, ss := range []*servingServer{s.metrics, s.primary} {
		if ss == nil {
			continue
		}

		if err := ss.Shutdown(ctx); err != nil && result == nil {
			result = err
		}

		select {
		case <-ss.done:
		case <-ctx.Done():
			if result == nil {
				result = ctx.Err()
			}
		}
	}

	if result != nil {
		s.logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "shutdown did not complete", logging.ErrorKey(), result)
	} else {
		s.logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "shutdown complete")
	}

	return result
}
