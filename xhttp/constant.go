// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttp

import (
	"net/http"
	"strconv"
)

// Constant represents an http.Handler that writes prebuilt, constant information to the response writer.
type Constant struct {
	Code   int
	Header http.Header
	Body   []byte
}

// ServeHTTP simply writes the configured information out to the response.  The body is
// omitted for HEAD requests, though Content-Length still reflects it.
func (c Constant) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	header := response.Header()
	for k, values := range c.Header {
		for _, v := range values {
			header.Add(k, v)
		}
	}

	if len(c.Body) > 0 {
		header.Set("Content-Length", strconv.Itoa(len(c.Body)))
	}

	response.WriteHeader(c.Code)
	if len(c.Body) > 0 && request.Method != http.MethodHead {
		response.Write(c.Body)
	}
}
