package logger

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/revel/log15"
)

const termTimeFormat = "2006/01/02 15:04:05"

// TerminalFormatHandler formats records like
//
//	INFO  2024/01/02 09:11:32    app: Twitter callback received  screen_name=joindin
//
// The level is colour coded unless noColor is set.
func TerminalFormatHandler(noColor bool) log15.Format {
	return log15.FormatFunc(func(r *Record) []byte {
		var color = 0
		switch r.Lvl {
		case log15.LvlCrit:
			color = 35
		case log15.LvlError:
			color = 31
		case log15.LvlWarn:
			color = 33
		case log15.LvlInfo:
			color = 32
		case log15.LvlDebug:
			color = 36
		}

		b := &bytes.Buffer{}
		lvl := LogLevel(r.Lvl).String()
		module := findInContext("module", r.Ctx)
		if !noColor && color > 0 {
			fmt.Fprintf(b, "\x1b[%dm%-5s\x1b[0m %s %6s: %-40s", color, lvl, r.Time.Format(termTimeFormat), module, r.Msg)
		} else {
			fmt.Fprintf(b, "%-5s %s %6s: %-40s", lvl, r.Time.Format(termTimeFormat), module, r.Msg)
		}

		for i := 0; i+1 < len(r.Ctx); i += 2 {
			k, ok := r.Ctx[i].(string)
			if ok && k == "module" {
				continue
			}
			if !ok {
				k = fmt.Sprint(r.Ctx[i])
			}
			b.WriteByte(' ')
			v := formatValue(r.Ctx[i+1])
			if !noColor && color > 0 {
				fmt.Fprintf(b, "\x1b[%dm%s\x1b[0m=%s", color, k, v)
			} else {
				b.WriteString(k)
				b.WriteByte('=')
				b.WriteString(v)
			}
		}

		b.WriteByte('\n')
		return b.Bytes()
	})
}

func findInContext(key string, ctx []interface{}) string {
	for i := 0; i+1 < len(ctx); i += 2 {
		if k, ok := ctx[i].(string); ok && k == key {
			return formatValue(ctx[i+1])
		}
	}
	return ""
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case time.Time:
		return v.Format(termTimeFormat)
	case error:
		return quoteIfNeeded(v.Error())
	case fmt.Stringer:
		return quoteIfNeeded(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 3, 64)
	case float64:
		return strconv.FormatFloat(v, 'f', 7, 64)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case string:
		return quoteIfNeeded(v)
	default:
		return quoteIfNeeded(fmt.Sprintf("%+v", v))
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.Quote(s)
	}
	return s
}
