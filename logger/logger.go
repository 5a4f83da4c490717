package logger

import (
	"fmt"
	"os"

	"github.com/revel/log15"
)

type (
	// MultiLogger is the logging surface exposed to the rest of the application.
	MultiLogger interface {
		// New returns a child logger with this logger's context plus ctx.
		New(ctx ...interface{}) MultiLogger
		// SetHandler updates the logger to write records to the specified handler.
		SetHandler(h LogHandler)

		Debug(msg string, ctx ...interface{})
		Debugf(msg string, params ...interface{})
		Info(msg string, ctx ...interface{})
		Infof(msg string, params ...interface{})
		Warn(msg string, ctx ...interface{})
		Warnf(msg string, params ...interface{})
		Error(msg string, ctx ...interface{})
		Errorf(msg string, params ...interface{})
		Crit(msg string, ctx ...interface{})
		Critf(msg string, params ...interface{})

		// Fatal logs at Crit and exits the process.
		Fatal(msg string, ctx ...interface{})
		Fatalf(msg string, params ...interface{})
		// Panic logs at Crit and panics.
		Panic(msg string, ctx ...interface{})
		Panicf(msg string, params ...interface{})
	}

	// LogHandler is satisfied by every log15 handler.
	LogHandler interface {
		Log(r *Record) error
	}

	// Record is a single log entry.
	Record = log15.Record

	// LogLevel is the severity of a record.
	LogLevel log15.Lvl

	// Logger is the log15 backed MultiLogger.
	Logger struct {
		log15.Logger
	}
)

const (
	LvlDebug = LogLevel(log15.LvlDebug)
	LvlInfo  = LogLevel(log15.LvlInfo)
	LvlWarn  = LogLevel(log15.LvlWarn)
	LvlError = LogLevel(log15.LvlError)
	LvlCrit  = LogLevel(log15.LvlCrit)
)

// LvlAllList lists every level, most severe first.
var LvlAllList = []LogLevel{LvlCrit, LvlError, LvlWarn, LvlInfo, LvlDebug}

// New creates a logger forked from the log15 root.
func New(ctx ...interface{}) MultiLogger {
	return &Logger{log15.New(ctx...)}
}

// SetRootHandler routes every logger created by New, and their children, to h.
func SetRootHandler(h LogHandler) {
	log15.Root().SetHandler(h)
}

func (l *Logger) New(ctx ...interface{}) MultiLogger {
	return &Logger{l.Logger.New(ctx...)}
}

func (l *Logger) SetHandler(h LogHandler) {
	l.Logger.SetHandler(h)
}

func (l *Logger) Debugf(msg string, params ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(msg, params...))
}

func (l *Logger) Infof(msg string, params ...interface{}) {
	l.Logger.Info(fmt.Sprintf(msg, params...))
}

func (l *Logger) Warnf(msg string, params ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(msg, params...))
}

func (l *Logger) Errorf(msg string, params ...interface{}) {
	l.Logger.Error(fmt.Sprintf(msg, params...))
}

func (l *Logger) Critf(msg string, params ...interface{}) {
	l.Logger.Crit(fmt.Sprintf(msg, params...))
}

func (l *Logger) Fatal(msg string, ctx ...interface{}) {
	l.Logger.Crit(msg, ctx...)
	os.Exit(1)
}

func (l *Logger) Fatalf(msg string, params ...interface{}) {
	l.Fatal(fmt.Sprintf(msg, params...))
}

func (l *Logger) Panic(msg string, ctx ...interface{}) {
	l.Logger.Crit(msg, ctx...)
	panic(msg)
}

func (l *Logger) Panicf(msg string, params ...interface{}) {
	l.Panic(fmt.Sprintf(msg, params...))
}

// String returns the upper case name of the level.
func (lvl LogLevel) String() string {
	switch lvl {
	case LvlDebug:
		return "DEBUG"
	case LvlInfo:
		return "INFO"
	case LvlWarn:
		return "WARN"
	case LvlError:
		return "ERROR"
	case LvlCrit:
		return "CRIT"
	}
	return "UNKNOWN"
}
