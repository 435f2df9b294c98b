package xhttp

import (
	"net/http"

	"github.com/example/quickstart/logging"
	"golang.org/x/sync/semaphore"
)

// Busy creates an Alice-style constructor that limits the number of HTTP transactions handled by decorated
// handlers.  The decorated handler blocks waiting on a semaphore until the request's context is canceled,
// at which point http.StatusServiceUnavailable is written.  If maxTransactions is nonpositive, no limit is
// applied and handlers are returned undecorated.
func Busy(maxTransactions int) func(http.Handler) http.Handler {
	if maxTransactions < 1 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	s := semaphore.NewWeighted(int64(maxTransactions))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			if err := s.Acquire(ctx, 1); err != nil {
				logging.Error(logging.GetLogger(ctx)).Log(logging.MessageKey(), "server busy", logging.ErrorKey(), err)
				response.WriteHeader(http.StatusServiceUnavailable)
				return
			}

			defer s.Release(1)
			next.ServeHTTP(response, request)
		})
	}
}
