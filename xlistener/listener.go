package xlistener

import (
	"errors"
	"net"
	"strconv"
	"sync"
	"syscall"

	"github.com/example/quickstart/logging"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// netListen is the factory function for creating a net.Listener.  Defaults to net.Listen.  Only tests would change this variable.
var netListen = net.Listen

// Options defines the available options for configuring a listener
type Options struct {
	// Logger is the go-kit logger to use for output.  If unset, logging.DefaultLogger() is used.
	Logger log.Logger

	// MaxConnections is the maximum number of active connections the listener will permit.  If this
	// value is not positive, there is no limit to the number of connections.
	MaxConnections int

	// Rejected is incremented each time the listener rejects a connection.  If unset, a go-kit discard Counter is used.
	Rejected metrics.Counter

	// Active is updated to reflect the current number of active connections.  If unset, a go-kit discard Gauge is used.
	Active metrics.Gauge

	// Network is the network to listen on.  This value is only used if Next is unset.  Defaults to "tcp" if unset.
	Network string

	// Address is the host:port to listen on.  This value is only used if Next is unset.
	Address string

	// Next is the net.Listener to decorate.  If this field is set, Network and Address are ignored.
	Next net.Listener
}

// New constructs a new net.Listener using a set of options.
//
// If Next is set, that listener is decorated with connection limiting and metrics.  Otherwise the
// address is bound synchronously, so that any bind failure such as an address already in use is
// returned from this function rather than surfacing later from Accept.  A listener created here
// occupies its port until Close is called.
func New(o Options) (net.Listener, error) {
	if o.Logger == nil {
		o.Logger = logging.DefaultLogger()
	}

	if o.Rejected == nil {
		o.Rejected = discard.NewCounter()
	}

	if o.Active == nil {
		o.Active = discard.NewGauge()
	}

	next := o.Next
	if next == nil {
		if len(o.Network) == 0 {
			o.Network = "tcp"
		}

		var err error
		next, err = netListen(o.Network, o.Address)
		if err != nil {
			return nil, err
		}
	}

	l := &listener{
		Listener: next,
		logger:   log.With(o.Logger, "listenNetwork", next.Addr().Network(), "listenAddress", next.Addr().String()),
		rejected: o.Rejected,
		active:   o.Active,
	}

	if o.MaxConnections > 0 {
		l.semaphore = make(chan struct{}, o.MaxConnections)
	}

	return l, nil
}

// listener decorates a net.Listener with metrics and optional maximum connection enforcement
type listener struct {
	net.Listener
	logger    log.Logger
	semaphore chan struct{}
	rejected  metrics.Counter
	active    metrics.Gauge
}

// acquire attempts to obtain a connection slot without blocking.  Without a semaphore this always succeeds.
func (l *listener) acquire() bool {
	if l.semaphore != nil {
		select {
		case l.semaphore <- struct{}{}:
		default:
			return false
		}
	}

	l.active.Add(1.0)
	return true
}

// release returns a connection slot and decrements the active connection gauge.
func (l *listener) release() {
	l.active.Add(-1.0)
	if l.semaphore != nil {
		<-l.semaphore
	}
}

// Accept waits for the next connection that can be admitted.  Connections arriving while the listener
// is at MaxConnections are closed immediately and counted as rejected.
func (l *listener) Accept() (net.Conn, error) {
	for {
		c, err := l.Listener.Accept()
		if errors.Is(err, net.ErrClosed) {
			l.logger.Log(level.Key(), level.DebugValue(), logging.MessageKey(), "listener closed")
			return nil, err
		}

		if err != nil {
			sysValue := ""
			if errno, ok := err.(syscall.Errno); ok {
				sysValue = "0x" + strconv.FormatInt(int64(errno), 16)
			}

			l.logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "failed to accept connection", logging.ErrorKey(), err, "sysValue", sysValue)
			return nil, err
		}

		if !l.acquire() {
			l.logger.Log(level.Key(), level.WarnValue(), logging.MessageKey(), "rejected connection", "remoteAddress", c.RemoteAddr().String())
			l.rejected.Add(1.0)
			c.Close()
			continue
		}

		l.logger.Log(level.Key(), level.DebugValue(), logging.MessageKey(), "accepted connection", "remoteAddress", c.RemoteAddr().String())
		return &conn{Conn: c, release: l.release}, nil
	}
}

// Close closes the underlying listener, logging any error.
func (l *listener) Close() error {
	err := l.Listener.Close()
	if err != nil {
		l.logger.Log(level.Key(), level.ErrorValue(), logging.MessageKey(), "error while closing listener", logging.ErrorKey(), err)
	}

	return err
}

// conn is a decorated net.Conn that gives its slot back to the listener when closed.
type conn struct {
	net.Conn
	releaseOnce sync.Once
	release     func()
}

// Close closes the decorated connection and releases its slot exactly once.
func (c *conn) Close() error {
	err := c.Conn.Close()
	c.releaseOnce.Do(c.release)
	return err
}
