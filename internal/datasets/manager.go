// Package datasets loads and owns the data the estimation service runs on:
// ward boundaries, bus routes, and ward-to-ward travel time measurements.
package datasets

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gati.bengalurutransit.org/internal/logging"
	"gati.bengalurutransit.org/internal/movement"
	"gati.bengalurutransit.org/internal/routes"
	"gati.bengalurutransit.org/internal/traveltime"
	"gati.bengalurutransit.org/internal/wards"
	"gati.bengalurutransit.org/movementdb"
)

// Manager holds the loaded datasets and the estimator built over them.
// Every field is set during InitManager and read-only afterwards, so
// handlers can share a Manager without locking.
type Manager struct {
	config Config

	Wards      *wards.Index
	Routes     *routes.Store
	MovementDB *movementdb.Client
	Estimator  *traveltime.Estimator

	matrix     *movement.Matrix
	lastLoaded time.Time

	shutdownOnce sync.Once
}

// InitManager loads every configured dataset and wires the estimator over
// them. Any load failure aborts initialization; the service does not start
// on partial data.
func InitManager(config Config) (*Manager, error) {
	logger := slog.Default().With(slog.String("component", "datasets_manager"))

	index, err := wards.LoadIndex(config.WardsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ward boundaries: %w", err)
	}
	logging.LogOperation(logger, "ward_boundaries_loaded",
		slog.Int("wards", index.Len()),
		slog.String("path", config.WardsPath))

	store, err := loadRoutes(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}
	logging.LogOperation(logger, "routes_loaded",
		slog.Int("routes", store.Len()),
		slog.String("path", config.RoutesPath))

	dbPath := config.DBPath
	if dbPath == "" {
		dbPath = ":memory:"
	}
	client, err := movementdb.NewClient(movementdb.NewConfig(dbPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("failed to open measurement database: %w", err)
	}

	ctx := context.Background()
	if err := client.StoreWards(ctx, index.All()); err != nil {
		logging.SafeCloseWithLogging(client, logger, "measurement_db")
		return nil, fmt.Errorf("failed to store wards: %w", err)
	}

	matrix, err := loadMatrix(ctx, config, client, logger)
	if err != nil {
		logging.SafeCloseWithLogging(client, logger, "measurement_db")
		return nil, err
	}

	manager := &Manager{
		config:     config,
		Wards:      index,
		Routes:     store,
		MovementDB: client,
		Estimator:  traveltime.NewEstimator(index, matrix),
		matrix:     matrix,
		lastLoaded: time.Now(),
	}

	logging.LogOperation(logger, "datasets_ready",
		slog.Int("wards", index.Len()),
		slog.Int("routes", store.Len()),
		slog.Int("measured_pairs", matrix.Len()))

	return manager, nil
}

func loadRoutes(config Config) (*routes.Store, error) {
	switch format := config.routesFormat(); format {
	case FormatGTFS:
		return routes.LoadGTFS(config.RoutesPath)
	case FormatBMTC:
		return routes.LoadBMTC(config.RoutesPath)
	default:
		return nil, fmt.Errorf("unknown routes format %q", format)
	}
}

// loadMatrix builds the pairwise lookup from whichever measurement source is
// configured. A ward-ID keyed JSON artifact loads directly; aggregate CSV
// sources go through the measurement database, which joins provider Movement
// IDs back to ward numbers. No source at all is not an error.
func loadMatrix(ctx context.Context, config Config, client *movementdb.Client, logger *slog.Logger) (*movement.Matrix, error) {
	switch {
	case config.TravelTimesPath != "" && strings.EqualFold(filepath.Ext(config.TravelTimesPath), ".json"):
		matrix, err := movement.LoadTravelTimes(config.TravelTimesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load travel times: %w", err)
		}
		logging.LogOperation(logger, "travel_times_loaded_from_artifact",
			slog.String("path", config.TravelTimesPath),
			slog.Int("pairs", matrix.Len()))
		return matrix, nil

	case config.TravelTimesPath != "":
		if err := client.ImportFromFile(ctx, config.TravelTimesPath); err != nil {
			return nil, fmt.Errorf("failed to import travel times from %s: %w", config.TravelTimesPath, err)
		}

	case config.TravelTimesURL != "":
		if err := client.DownloadAndStore(ctx, config.TravelTimesURL, config.AuthHeaderKey, config.AuthHeaderValue); err != nil {
			return nil, fmt.Errorf("failed to download travel times from %s: %w", config.TravelTimesURL, err)
		}

	default:
		logging.LogOperation(logger, "no_travel_time_source_configured",
			slog.String("effect", "all estimates will report missing data"))
		return movement.NewMatrixFromMeans(nil), nil
	}

	matrix, err := client.Matrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build travel time matrix: %w", err)
	}
	logging.LogOperation(logger, "travel_times_loaded_from_database",
		slog.Int("pairs", matrix.Len()))
	return matrix, nil
}

// Matrix returns the pairwise measurement lookup.
func (manager *Manager) Matrix() *movement.Matrix {
	return manager.matrix
}

// LastLoaded reports when dataset loading finished.
func (manager *Manager) LastLoaded() time.Time {
	return manager.lastLoaded
}

// IsReady reports whether the manager holds a complete dataset and can
// serve estimates.
func (manager *Manager) IsReady() bool {
	return manager != nil &&
		manager.Wards != nil &&
		manager.Routes != nil &&
		manager.matrix != nil &&
		manager.Estimator != nil
}

// Shutdown closes the measurement database. It is safe to call more than
// once.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		if manager.MovementDB == nil {
			return
		}
		logger := slog.Default().With(slog.String("component", "datasets_manager"))
		logging.SafeCloseWithLogging(manager.MovementDB, logger, "measurement_db")
	})
}
