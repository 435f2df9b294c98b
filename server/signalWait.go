package server

import (
	"os"

	"github.com/example/quickstart/logging"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// SignalWait blocks until any of a set of signals is encountered or a failure is received.  The signal which
// caused this function to exit is returned, or the failure.  A nil signal and nil error indicate that the
// signals channel was closed.
//
// If no waitOn signals are supplied, this function will never return until the signals channel is closed
// or a failure arrives.  A nil failures channel is never selected.
//
// In all cases, the supplied logger is used to log information about signals that are ignored.
func SignalWait(logger log.Logger, signals <-chan os.Signal, failures <-chan error, waitOn ...os.Signal) (os.Signal, error) {
	filter := make(map[os.Signal]bool)
	for _, s := range waitOn {
		filter[s] = true
	}

	for {
		select {
		case s, ok := <-signals:
			if !ok {
				return nil, nil
			}

			if filter[s] {
				return s, nil
			}

			logger.Log(level.Key(), level.InfoValue(), logging.MessageKey(), "ignoring signal", "signal", s.String())

		case err := <-failures:
			return nil, err
		}
	}
}
