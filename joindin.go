// Package joindin is the web layer of the joind.in Twitter sign-in service.
//
// A Server routes every request through a chain of filters (panic recovery,
// routing, parameters, session, flash) to an action, and applies the Result
// the action returned once the chain has unwound, so cookies written by the
// session and flash filters always precede the body.
package joindin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/config"
	"github.com/joindin/joindin/logger"
)

// Server holds everything a request needs.
type Server struct {
	Config   *config.Context
	Settings *config.Settings
	RunMode  string
	Log      logger.MultiLogger

	Router    *Router
	Filters   []Filter
	Sessions  SessionEngine
	Templates *TemplateLoader
	Signer    Signer

	requestLog logger.MultiLogger
}

// Options are the collaborators NewServer wires together.
type Options struct {
	Config   *config.Context
	Settings *config.Settings
	RunMode  string
	Log      logger.MultiLogger
	// Views holds the templates, errors/<status>.html included.
	Views fs.FS
	// Cache backs the "cache" session engine.
	Cache cache.Cache
}

// NewServer builds a server with the default filter chain and an empty router.
func NewServer(o Options) (*Server, error) {
	if o.Settings == nil {
		return nil, errors.New("joindin: settings required")
	}
	if o.Config == nil {
		o.Config = config.NewContext()
	}
	if o.Log == nil {
		o.Log = logger.New("module", "joindin")
	}

	s := &Server{
		Config:     o.Config,
		Settings:   o.Settings,
		RunMode:    o.RunMode,
		Log:        o.Log,
		Router:     NewRouter(),
		Filters:    DefaultFilters(),
		Signer:     NewSigner(o.Settings.Secret),
		requestLog: o.Log.New("section", "requestlog"),
	}

	var err error
	if s.Templates, err = NewTemplateLoader(o.Views, s.Router); err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}
	s.Sessions, err = NewSessionEngine(o.Settings.SessionEngine, SessionEngineOptions{
		ExpireAfterDuration: o.Settings.SessionExpires,
		Cache:               o.Cache,
		Log:                 o.Log.New("section", "session-engine"),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DevMode reports whether the server runs in the dev run mode.
func (s *Server) DevMode() bool {
	return s.RunMode == "" || s.RunMode == "dev"
}

// SiteURL returns the absolute URL for path under site_url.
func (s *Server) SiteURL(path string) string {
	return s.Settings.SiteURL + "/" + strings.TrimLeft(path, "/")
}

// ServeHTTP runs the filter chain and applies the result.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	c := NewController(s, w, r)

	s.Filters[0](c, s.Filters[1:])
	if c.Result != nil {
		c.Result.Apply(c.Request, c.Response)
	} else {
		c.Response.WriteHeader(http.StatusOK, "")
	}
	if closer, ok := c.Response.Out.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.Log.Warn("Could not finish response", "error", err)
		}
	}

	s.requestLog.Info("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"action", c.Action,
		"status", c.Response.Status,
		"duration", time.Since(start),
	)
}

// Run serves on http.addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Settings.HTTPAddr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(s.Config.IntDefault("http.timeout.read", 90)) * time.Second,
		WriteTimeout:      time.Duration(s.Config.IntDefault("http.timeout.write", 60)) * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Log.Info("Listening", "addr", srv.Addr, "runmode", s.RunMode)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Log.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
