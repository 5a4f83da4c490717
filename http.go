// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package joindin

import (
	"net/http"
)

// Response wraps the http.ResponseWriter for one request.
type Response struct {
	Status      int
	ContentType string

	Out     http.ResponseWriter
	written bool
}

// NewResponse wraps w.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{Out: w}
}

// Header returns the header map that will be sent.
func (resp *Response) Header() http.Header {
	return resp.Out.Header()
}

// WriteHeader writes the header (for now, just the status code).
// The status may be set directly by the application (c.Response.Status = 501).
// If it isn't, then fall back to the provided status code.
func (resp *Response) WriteHeader(defaultStatusCode int, defaultContentType string) {
	if resp.written {
		return
	}
	if resp.ContentType == "" {
		resp.ContentType = defaultContentType
	}
	if resp.ContentType != "" {
		resp.Out.Header().Set("Content-Type", resp.ContentType)
	}
	if resp.Status == 0 {
		resp.Status = defaultStatusCode
	}
	resp.written = true
	resp.Out.WriteHeader(resp.Status)
}
