// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package joindin

import (
	"net/http"
)

// PanicFilter wraps the action invocation in a protective defer blanket that
// converts panics into 500 error pages.
func PanicFilter(c *Controller, fc []Filter) {
	defer func() {
		if err := recover(); err != nil {
			handleInvocationPanic(c, err)
		}
	}()
	fc[0](c, fc[1:])
}

// This function handles a panic in an action invocation.
// It logs the stack trace and displays an error page.
func handleInvocationPanic(c *Controller, err interface{}) {
	appError := NewErrorFromPanic(err)
	c.Log.Error("PanicFilter: Caught panic", "error", err, "path", appError.Path, "line", appError.Line, "stack", appError.Stack)

	if !c.Server.DevMode() {
		// The stack and location stay in the log outside of development.
		appError = &Error{Title: "Server Error", Description: http.StatusText(http.StatusInternalServerError)}
	}

	c.Response.Status = http.StatusInternalServerError
	c.Result = c.RenderError(appError)
}
