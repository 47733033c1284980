package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-lookup/config"
	_ "weather-lookup/docs"
	v1 "weather-lookup/internal/controllers/http/v1"
	"weather-lookup/internal/repositories"
	"weather-lookup/internal/services/weather"
	"weather-lookup/pkg/httpserver"
	"weather-lookup/pkg/logger"
	"weather-lookup/pkg/observe"
)

//go:generate swag init --dir ../../ --generalInfo cmd/weather-lookup/main.go --output ../../docs

// @title Weather Lookup API
// @version 1.0.0
// @description Current conditions and a five day summary from OpenWeatherMap, formatted for display, plus a rain prediction lookup.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Current conditions and daily forecast
// @tag.name Rain
// @tag.description Rain prediction model
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load config: %v\n", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}

	// the hook parses zap JSON lines, so it only rides along the json encoder
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" && cnf.Log.Format == "json" {
		hook, err = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.Debug, cnf.Sentry.DSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot init sentry: %v\n", err)
		} else {
			writers = append(writers, hook)
		}
	}

	l, err := logger.New(logger.Config{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
		Writers: writers,
	})
	if err != nil {
		l.Warning("logger config ignored", map[string]any{"err": err.Error()})
	}
	if hook != nil {
		hook.SetLogger(l)
	}

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
	}, l)

	weatherRepo, rainRepo, err := repositories.InitRepositories(cnf, l)
	if err != nil {
		l.Fatal("cannot init repositories", map[string]any{"err": err.Error()})
	}

	service := weather.NewWeatherService(weatherRepo, rainRepo, l)

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":         cnf.Server.Port,
		"env":          cnf.App.Env,
		"rain_enabled": cnf.RainEnabled(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			l.Error(err, map[string]any{"stage": "http shutdown"})
		}
		if hook != nil {
			hook.Flush()
		}
		// syncing stdout returns EINVAL on a terminal
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
