package xhttp

import "net/http"

// The cross-origin response header names
const (
	AccessControlAllowOriginHeader  = "Access-Control-Allow-Origin"
	AccessControlAllowHeadersHeader = "Access-Control-Allow-Headers"
	AccessControlAllowMethodsHeader = "Access-Control-Allow-Methods"
)

// The permissive values sent in local mode.  Any origin may call any of the listed methods
// with the listed request headers.
const (
	AllowAnyOrigin = "*"
	AllowedHeaders = "Origin, Content-Type, Accept"
	AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS, HEAD"
)

// CORSHeaders returns a new copy of the permissive cross-origin headers used for local development.
func CORSHeaders() http.Header {
	return http.Header{
		AccessControlAllowOriginHeader:  {AllowAnyOrigin},
		AccessControlAllowHeadersHeader: {AllowedHeaders},
		AccessControlAllowMethodsHeader: {AllowedMethods},
	}
}

// CORS is the Alice-style constructor which appends CORSHeaders to every response, regardless of
// route, method, or status.  Preflight requests get no special treatment.
func CORS() func(http.Handler) http.Handler {
	return AppendHeaders(CORSHeaders())
}
