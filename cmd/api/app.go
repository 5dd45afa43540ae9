package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gati.bengalurutransit.org/internal/app"
	"gati.bengalurutransit.org/internal/appconf"
	"gati.bengalurutransit.org/internal/clock"
	"gati.bengalurutransit.org/internal/datasets"
	"gati.bengalurutransit.org/internal/logging"
	"gati.bengalurutransit.org/internal/metrics"
	"gati.bengalurutransit.org/internal/restapi"
	"gati.bengalurutransit.org/internal/webui"
)

const dbStatsInterval = 15 * time.Second

// ParseAPIKeys splits a comma-separated API key list, trimming whitespace
// and dropping empty entries. An empty input yields an empty (non-nil)
// slice, which rejects every request.
func ParseAPIKeys(raw string) []string {
	keys := []string{}
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// createClock selects the time source for the environment. The Test
// environment reads GATI_CURRENT_TIME so integration harnesses can pin the
// envelope timestamp; everything else runs on system time.
func createClock(env appconf.Environment) clock.Clock {
	if env == appconf.Test {
		location, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			location = time.UTC
		}
		return clock.NewEnvironmentClock("GATI_CURRENT_TIME", "", location)
	}
	return clock.RealClock{}
}

// BuildApplication loads every dataset and assembles the shared Application
// value. A dataset failure is fatal here; the service never starts on
// partial data.
func BuildApplication(cfg appconf.Config, datasetsConfig datasets.Config) (*app.Application, error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)
	slog.SetDefault(logger)

	manager, err := datasets.InitManager(datasetsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize datasets: %w", err)
	}

	appMetrics := metrics.NewWithLogger(logger)
	if manager.MovementDB != nil {
		appMetrics.StartDBStatsCollector(manager.MovementDB.DB, dbStatsInterval)
	}

	return &app.Application{
		Config:         cfg,
		DatasetsConfig: datasetsConfig,
		Logger:         logger,
		Datasets:       manager,
		Clock:          createClock(cfg.Env),
		Metrics:        appMetrics,
	}, nil
}

// CreateServer wires the REST API, web UI, and middleware chain into an
// http.Server. The caller owns the returned RestAPI and must Shutdown it
// when the server stops.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	mux := http.NewServeMux()

	api := restapi.NewRestAPI(coreApp)
	api.SetRoutes(mux)

	webUI := &webui.WebUI{Application: coreApp}
	webUI.SetWebUIRoutes(mux)

	// Outermost first: request ID, then logging (so the ID is in scope),
	// then metrics, then security headers around the routed handlers.
	var handler http.Handler = mux
	handler = api.WithSecurityHeaders(handler)
	handler = restapi.MetricsHandler(coreApp.Metrics)(handler)
	handler = restapi.NewRequestLoggingMiddleware(coreApp.Logger)(handler)
	handler = restapi.RequestIDMiddleware(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return srv, api
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests and tears
// down the API, metrics collector, and datasets.
func Run(srv *http.Server, api *restapi.RestAPI, coreApp *app.Application) error {
	shutdownErr := make(chan error, 1)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logging.LogOperation(coreApp.Logger, "shutting_down",
			slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logging.LogOperation(coreApp.Logger, "starting_server",
		slog.String("addr", srv.Addr),
		slog.String("env", coreApp.Config.Env.String()))

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	err := <-shutdownErr

	api.Shutdown()
	coreApp.Metrics.Shutdown()
	coreApp.Datasets.Shutdown()

	logging.LogOperation(coreApp.Logger, "stopped_server")
	return err
}
