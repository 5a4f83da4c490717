package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/revel/config"
)

var toLevel = map[string]LogLevel{
	"debug": LvlDebug,
	"info":  LvlInfo,
	"warn":  LvlWarn,
	"error": LvlError,
	"crit":  LvlCrit,
}

// InitializeFromConfig builds the root handler from the log.* options:
//
//	log.all.output    applies to every level
//	log.<lvl>.output  stdout, stderr, off or a file path (".json" for JSON lines)
//	log.request.output  destination for records tagged section=requestlog
//
// Without a config, info and above go to stderr.
func InitializeFromConfig(basePath string, cfg *config.Context) *CompositeMultiHandler {
	c := NewCompositeMultiHandler()
	if cfg == nil {
		c.SetTerminal(os.Stderr, false, true, LvlCrit, LvlError, LvlWarn, LvlInfo)
		return c
	}

	if output, found := cfg.String("log.all.output"); found {
		initHandlerFor(c, output, basePath, cfg, LvlAllList...)
	}
	for _, name := range []string{"debug", "info", "warn", "error", "crit"} {
		if output, found := cfg.String("log." + name + ".output"); found {
			initHandlerFor(c, output, basePath, cfg, toLevel[name])
		}
	}
	if c.CriticalHandler == nil && c.ErrorHandler != nil {
		c.CriticalHandler = c.ErrorHandler
	}
	initRequestLog(c, basePath, cfg)
	return c
}

// Request log lines are split from the info handler when log.request.output is set.
func initRequestLog(c *CompositeMultiHandler, basePath string, cfg *config.Context) {
	output := cfg.StringDefault("log.request.output", "")
	if output == "" {
		return
	}
	request := NewCompositeMultiHandler()
	initHandlerFor(request, output, basePath, cfg, LvlInfo)
	if request.InfoHandler == nil {
		return
	}
	requestHandler := MatchHandler("section", "requestlog", request.InfoHandler)
	if c.InfoHandler == nil {
		c.InfoHandler = requestHandler
		return
	}
	c.InfoHandler = MultiHandler(
		NotMatchHandler("section", "requestlog", c.InfoHandler),
		requestHandler,
	)
}

func initHandlerFor(c *CompositeMultiHandler, output, basePath string, cfg *config.Context, levels ...LogLevel) {
	noColor := !cfg.BoolDefault("log.colorize", true)
	switch output = strings.TrimSpace(output); output {
	case "", "off":
		c.Disable(levels...)
	case "stdout":
		c.SetTerminal(os.Stdout, noColor, true, levels...)
	case "stderr":
		c.SetTerminal(os.Stderr, noColor, true, levels...)
	default:
		if !filepath.IsAbs(output) {
			output = filepath.Join(basePath, output)
		}
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			panic(err)
		}
		handler := FileHandler(output,
			strings.HasSuffix(output, ".json"),
			cfg.IntDefault("log.maxsize", 1024),
			cfg.IntDefault("log.maxage", 14))
		c.SetHandlers(handler, true, levels...)
	}
}
