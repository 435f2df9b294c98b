package xhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSHeaders(t *testing.T) {
	var (
		assert = assert.New(t)
		first  = CORSHeaders()
		second = CORSHeaders()
	)

	assert.Equal(http.Header{
		"Access-Control-Allow-Origin":  {"*"},
		"Access-Control-Allow-Headers": {"Origin, Content-Type, Accept"},
		"Access-Control-Allow-Methods": {"GET, POST, PUT, DELETE, OPTIONS, HEAD"},
	}, first)

	first.Set(AccessControlAllowOriginHeader, "http://example.com")
	assert.Equal("*", second.Get(AccessControlAllowOriginHeader))
}

func TestCORS(t *testing.T) {
	var (
		methods  = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"}
		statuses = []int{http.StatusOK, http.StatusNoContent, http.StatusNotFound, http.StatusInternalServerError}
	)

	for _, method := range methods {
		for _, status := range statuses {
			t.Run(method+"/"+http.StatusText(status), func(t *testing.T) {
				var (
					assert   = assert.New(t)
					response = httptest.NewRecorder()
					request  = httptest.NewRequest(method, "/any/path", nil)

					decorated = CORS()(http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
						response.WriteHeader(status)
					}))
				)

				decorated.ServeHTTP(response, request)
				assert.Equal(status, response.Code)
				assert.Equal([]string{AllowAnyOrigin}, response.Header()[AccessControlAllowOriginHeader])
				assert.Equal([]string{AllowedHeaders}, response.Header()[AccessControlAllowHeadersHeader])
				assert.Equal([]string{AllowedMethods}, response.Header()[AccessControlAllowMethodsHeader])
			})
		}
	}
}
