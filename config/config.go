// Package config loads app.conf and the environment overrides on top of it.
//
// app.conf is an INI file. Options outside any section live in DEFAULT; the
// selected run mode section ([dev], [prod], ...) is checked first and falls
// back to DEFAULT.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	rconfig "github.com/revel/config"
)

// Context is the merged view of app.conf for one run mode.
type Context = rconfig.Context

// ErrRunModeNotFound is returned when app.conf has no section for the run mode.
var ErrRunModeNotFound = errors.New("config: run mode section not found")

// envOverrides maps environment variables onto app.conf options. Unset
// variables leave the file value alone.
type envOverrides struct {
	TwitterConsumerKey    string `env:"JOINDIN_TWITTER_CONSUMER_KEY"`
	TwitterConsumerSecret string `env:"JOINDIN_TWITTER_CONSUMER_SECRET"`
	AppSecret             string `env:"JOINDIN_APP_SECRET"`
	HTTPAddr              string `env:"JOINDIN_HTTP_ADDR"`
	SiteURL               string `env:"JOINDIN_SITE_URL"`
	DBPath                string `env:"JOINDIN_DB_PATH"`
}

func (e envOverrides) options() map[string]string {
	return map[string]string{
		"twitter_consumer_key":    e.TwitterConsumerKey,
		"twitter_consumer_secret": e.TwitterConsumerSecret,
		"app.secret":              e.AppSecret,
		"http.addr":               e.HTTPAddr,
		"site_url":                e.SiteURL,
		"db.path":                 e.DBPath,
	}
}

// NewContext returns an empty context, options may be added with SetOption.
func NewContext() *Context {
	return rconfig.NewContext()
}

// Load reads confName from the first directory in confPaths that has it,
// selects the runMode section and applies the environment overrides.
func Load(confName string, confPaths []string, runMode string) (*Context, error) {
	c, err := rconfig.LoadContext(confName, confPaths)
	if err != nil {
		return nil, fmt.Errorf("load %s from %s: %w", confName, strings.Join(confPaths, ","), err)
	}
	if runMode != "" {
		if !c.HasSection(runMode) {
			return nil, fmt.Errorf("%w: %s", ErrRunModeNotFound, runMode)
		}
		c.SetSection(runMode)
	}
	if err := ApplyEnv(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv copies the JOINDIN_* environment variables into c.
func ApplyEnv(c *Context) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	for option, value := range overrides.options() {
		if value != "" {
			c.SetOption(option, value)
		}
	}
	return nil
}

// Duration reads option as a time.Duration. The literal "session" and an
// empty value both mean zero.
func Duration(c *Context, option string, dfault time.Duration) (time.Duration, error) {
	value, found := c.String(option)
	if !found {
		return dfault, nil
	}
	if value == "" || value == "session" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s invalid: %w", option, err)
	}
	return d, nil
}
