package resource

import (
	"errors"
	"net/http"

	"github.com/example/quickstart/xhttp"
	"github.com/gorilla/mux"
)

// ErrNilRouter is returned when a Resource is asked to register onto a nil router.
var ErrNilRouter = errors.New("a router is required")

// Resource supplies request-handling behavior by registering routes on a router.  An error
// from Register is fatal to server startup.
type Resource interface {
	Register(*mux.Router) error
}

// Func is a function type that implements Resource.
type Func func(*mux.Router) error

func (f Func) Register(r *mux.Router) error {
	return f(r)
}

const (
	// DefaultPath is the path served by the default resource
	DefaultPath = "/myresource"

	// DefaultText is the plain text body returned by the default resource
	DefaultText = "Got it!"
)

// Default returns the quickstart resource, which answers GET requests to DefaultPath with DefaultText
// as text/plain.
func Default() Resource {
	return Func(func(r *mux.Router) error {
		if r == nil {
			return ErrNilRouter
		}

		r.Handle(DefaultPath, xhttp.Constant{
			Code:   http.StatusOK,
			Header: http.Header{"Content-Type": {"text/plain"}},
			Body:   []byte(DefaultText),
		}).Methods(http.MethodGet, http.MethodHead)

		return nil
	})
}
