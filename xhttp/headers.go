package xhttp

import (
	"io"
	"net/http"
	"net/textproto"

	"github.com/felixge/httpsnoop"
)

// AppendHeaders returns an Alice-style constructor that appends a static set of headers
// to every response.  The headers are added, never set, at the moment the response header is
// committed: the first WriteHeader with a final status, Write, ReadFrom, or Flush.  If the decorated
// handler returns without writing anything, the headers are appended before net/http writes its
// implicit 200.  The decorated handler therefore runs before the headers are appended.
//
// If the set of headers is empty, the constructor does no decoration.
func AppendHeaders(extra http.Header) func(http.Handler) http.Handler {
	if len(extra) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	// preprocess the header keys, so that we do this just once.
	// this also allows the header to be read in from sources that do not use
	// the http.Header methods, such as unmarshaled JSON.
	preprocessed := make(http.Header, len(extra))
	for k, v := range extra {
		preprocessed[textproto.CanonicalMIMEHeaderKey(k)] = v
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			committed := false
			commit := func() {
				if committed {
					return
				}

				committed = true
				header := response.Header()
				for k, values := range preprocessed {
					for _, v := range values {
						header.Add(k, v)
					}
				}
			}

			decorated := httpsnoop.Wrap(response, httpsnoop.Hooks{
				WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
					return func(code int) {
						// informational responses do not commit the final header
						if code >= http.StatusOK {
							commit()
						}

						next(code)
					}
				},
				Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
					return func(b []byte) (int, error) {
						commit()
						return next(b)
					}
				},
				ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
					return func(src io.Reader) (int64, error) {
						commit()
						return next(src)
					}
				},
				Flush: func(next httpsnoop.FlushFunc) httpsnoop.FlushFunc {
					return func() {
						commit()
						next()
					}
				},
			})

			next.ServeHTTP(decorated, request)
			commit()
		})
	}
}
