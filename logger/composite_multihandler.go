package logger

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
)

// CompositeMultiHandler routes each record to the handler registered for its
// level. A nil handler drops the record.
type CompositeMultiHandler struct {
	DebugHandler    LogHandler
	InfoHandler     LogHandler
	WarnHandler     LogHandler
	ErrorHandler    LogHandler
	CriticalHandler LogHandler
}

func NewCompositeMultiHandler() *CompositeMultiHandler {
	return &CompositeMultiHandler{}
}

func (h *CompositeMultiHandler) Log(r *Record) (err error) {
	var handler LogHandler

	switch LogLevel(r.Lvl) {
	case LvlInfo:
		handler = h.InfoHandler
	case LvlDebug:
		handler = h.DebugHandler
	case LvlWarn:
		handler = h.WarnHandler
	case LvlError:
		handler = h.ErrorHandler
	case LvlCrit:
		handler = h.CriticalHandler
	}

	if handler != nil {
		err = handler.Log(r)
	}
	return
}

// SetHandler assigns handler to level. When replace is false and a handler is
// already present both receive the record.
func (h *CompositeMultiHandler) SetHandler(handler LogHandler, replace bool, level LogLevel) {
	if handler == nil {
		return
	}
	source := &h.DebugHandler
	switch level {
	case LvlDebug:
		source = &h.DebugHandler
	case LvlInfo:
		source = &h.InfoHandler
	case LvlWarn:
		source = &h.WarnHandler
	case LvlError:
		source = &h.ErrorHandler
	case LvlCrit:
		source = &h.CriticalHandler
	}

	if !replace && *source != nil {
		*source = MultiHandler(*source, handler)
	} else {
		*source = handler
	}
}

// SetHandlers assigns handler to every level in levels, or all levels if none are given.
func (h *CompositeMultiHandler) SetHandlers(handler LogHandler, replace bool, levels ...LogLevel) {
	if len(levels) == 0 {
		levels = LvlAllList
	}
	for _, lvl := range levels {
		h.SetHandler(handler, replace, lvl)
	}
}

// SetTerminal writes the levels to a terminal stream.
func (h *CompositeMultiHandler) SetTerminal(writer io.Writer, noColor bool, replace bool, levels ...LogLevel) {
	switch writer {
	case os.Stdout:
		writer = colorable.NewColorableStdout()
	case os.Stderr:
		writer = colorable.NewColorableStderr()
	}
	h.SetHandlers(StreamHandler(writer, TerminalFormatHandler(noColor)), replace, levels...)
}

// Disable drops records of the given levels, or every level if none are given.
func (h *CompositeMultiHandler) Disable(levels ...LogLevel) {
	if len(levels) == 0 {
		levels = LvlAllList
	}
	for _, level := range levels {
		switch level {
		case LvlDebug:
			h.DebugHandler = nil
		case LvlInfo:
			h.InfoHandler = nil
		case LvlWarn:
			h.WarnHandler = nil
		case LvlError:
			h.ErrorHandler = nil
		case LvlCrit:
			h.CriticalHandler = nil
		}
	}
}
