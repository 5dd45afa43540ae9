// Package app wires the application's shared dependencies together for
// handlers and middleware.
package app

import (
	"log/slog"

	"gati.bengalurutransit.org/internal/appconf"
	"gati.bengalurutransit.org/internal/clock"
	"gati.bengalurutransit.org/internal/datasets"
	"gati.bengalurutransit.org/internal/metrics"
)

// Application holds the dependencies for our HTTP handlers, helpers, and
// middleware: configuration, the loaded datasets with their estimator, a
// clock, and the metrics registry.
type Application struct {
	Config         appconf.Config
	DatasetsConfig datasets.Config
	Logger         *slog.Logger
	Datasets       *datasets.Manager
	Clock          clock.Clock
	Metrics        *metrics.Metrics
}
