package logger

import (
	"fmt"
	"io"

	"github.com/revel/log15"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FuncHandler returns a handler that logs records with the given function.
func FuncHandler(fn func(r *Record) error) LogHandler {
	return log15.FuncHandler(fn)
}

// NilHandler discards every record.
func NilHandler() LogHandler {
	return log15.DiscardHandler()
}

// StreamHandler writes records to wr in the given format.
func StreamHandler(wr io.Writer, format log15.Format) LogHandler {
	return log15.StreamHandler(wr, format)
}

// LevelHandler only passes records of exactly the given level.
func LevelHandler(lvl LogLevel, h LogHandler) LogHandler {
	return log15.FilterHandler(func(r *Record) bool {
		return r.Lvl == log15.Lvl(lvl)
	}, h)
}

// MinLevelHandler passes records at lvl or more severe.
func MinLevelHandler(lvl LogLevel, h LogHandler) LogHandler {
	return log15.LvlFilterHandler(log15.Lvl(lvl), h)
}

// MatchHandler passes records whose context has key equal to value.
func MatchHandler(key string, value interface{}, h LogHandler) LogHandler {
	return log15.FilterHandler(func(r *Record) bool {
		return matchContext(r.Ctx, key, value)
	}, h)
}

// NotMatchHandler passes records whose context does not have key equal to value.
func NotMatchHandler(key string, value interface{}, h LogHandler) LogHandler {
	return log15.FilterHandler(func(r *Record) bool {
		return !matchContext(r.Ctx, key, value)
	}, h)
}

// MultiHandler dispatches every record to each handler.
func MultiHandler(hs ...LogHandler) LogHandler {
	handlers := make([]log15.Handler, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			handlers = append(handlers, h)
		}
	}
	return log15.MultiHandler(handlers...)
}

// FileHandler writes to a rotating file. Files ending in json get one JSON
// object per line, everything else the plain terminal format.
func FileHandler(path string, json bool, maxSizeMB, maxAgeDays int) LogHandler {
	writer := &lumberjack.Logger{
		Filename: path,
		MaxSize:  maxSizeMB,
		MaxAge:   maxAgeDays,
	}
	if json {
		return log15.StreamHandler(writer, log15.JsonFormat())
	}
	return log15.StreamHandler(writer, TerminalFormatHandler(true))
}

func matchContext(ctx []interface{}, key string, value interface{}) bool {
	for i := 0; i+1 < len(ctx); i += 2 {
		if k, ok := ctx[i].(string); ok && k == key {
			return fmt.Sprint(ctx[i+1]) == fmt.Sprint(value)
		}
	}
	return false
}
