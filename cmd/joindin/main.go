// The joindin command serves the joind.in Twitter sign in pages.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joindin/joindin"
	"github.com/joindin/joindin/app/controllers"
	"github.com/joindin/joindin/app/models"
	"github.com/joindin/joindin/app/views"
	"github.com/joindin/joindin/cache"
	"github.com/joindin/joindin/config"
	"github.com/joindin/joindin/logger"
	"github.com/joindin/joindin/session"
	"github.com/joindin/joindin/twitter"
)

var (
	confDir = flag.String("conf", "conf", "directory holding app.conf")
	runMode = flag.String("mode", "dev", "run mode section of app.conf")
	addr    = flag.String("addr", "", "listen address, overrides http.addr")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "joindin:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("app.conf", []string{*confDir}, *runMode)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.SetOption("http.addr", *addr)
	}

	logger.SetRootHandler(logger.InitializeFromConfig(".", cfg))
	log := logger.New("module", "joindin")
	session.InitSession(log)
	cache.InitCache(log)

	settings, err := config.NewSettings(cfg)
	if err != nil {
		return err
	}

	c, err := cache.New(cfg)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	users, err := models.Open(settings.DBDriver, settings.DBPath)
	if err != nil {
		return fmt.Errorf("user store: %w", err)
	}
	defer users.Close()

	s, err := joindin.NewServer(joindin.Options{
		Config:   cfg,
		Settings: settings,
		RunMode:  *runMode,
		Log:      log,
		Views:    views.FS,
		Cache:    c,
	})
	if err != nil {
		return err
	}

	client := twitter.NewClient(settings.Twitter, c, log.New("section", "twitter"))
	if err := controllers.Routes(s.Router, &controllers.Auth{Users: users}, client); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}
