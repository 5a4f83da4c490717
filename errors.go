// Copyright (c) 2012-2016 The Revel Framework Authors, All rights reserved.
// Revel Framework source code and usage is governed by a MIT style
// license that can be found in the LICENSE file.

package joindin

import (
	"fmt"
	"strings"

	"github.com/go-stack/stack"
)

// StaticError is used for constant string errors.
type StaticError string

// Error implements the error interface.
func (e StaticError) Error() string {
	return string(e)
}

const (
	ErrDuplicateRoute      StaticError = "duplicate route"
	ErrMissingRoute        StaticError = "missing route argument"
	ErrNoRoute             StaticError = "no route for action"
	ErrTemplateNotFound    StaticError = "couldn't find template"
	ErrUnknownSessionStore StaticError = "unknown session engine"
)

// Error description, used as an argument to the error template.
type Error struct {
	Title, Path, Description string // Description of the error, as presented to the user.
	Line                     int    // Where the error was encountered.
	Stack                    string // The stack trace, one frame per line.
	MetaError                string // Error that occurred producing the error page.
}

// NewErrorFromPanic builds a "Runtime Panic" error located at the frame that
// raised the panic. It must be called from the deferred recover.
func NewErrorFromPanic(err interface{}) *Error {
	trace := stack.Trace().TrimRuntime()

	description := "Unspecified error"
	if err != nil {
		description = fmt.Sprint(err)
	}
	e := &Error{
		Title:       "Runtime Panic",
		Description: description,
	}

	var lines []string
	panicked := false
	located := false
	for _, call := range trace {
		frame := call.Frame()
		lines = append(lines, fmt.Sprintf("%+v %n", call, call))
		if frame.Function == "runtime.gopanic" {
			panicked = true
			continue
		}
		if panicked && !located && !strings.HasPrefix(frame.Function, "runtime.") {
			e.Path, e.Line = frame.File, frame.Line
			located = true
		}
	}
	e.Stack = strings.Join(lines, "\n")
	return e
}

// Error method constructs a plaintext version of the error, taking
// account that fields are optionally set. Returns e.g. Runtime Panic
// (in app/controllers/twitter.go:51): assignment to entry in nil map
func (e *Error) Error() string {
	loc := ""
	if e.Path != "" {
		line := ""
		if e.Line != 0 {
			line = fmt.Sprintf(":%d", e.Line)
		}
		loc = fmt.Sprintf("(in %s%s)", e.Path, line)
	}
	header := loc
	if e.Title != "" {
		if loc != "" {
			header = fmt.Sprintf("%s %s: ", e.Title, loc)
		} else {
			header = fmt.Sprintf("%s: ", e.Title)
		}
	}
	return header + e.Description
}
