// Command ingest prepares a deployment's measurement database: it loads the
// ward and route datasets named by a YAML manifest, imports (or downloads)
// travel time aggregates, plans the directed ward pairs the deployment needs
// measured, and writes the optional ward-pairs artifact.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"gati.bengalurutransit.org/internal/appconf"
	"gati.bengalurutransit.org/internal/datasets"
	"gati.bengalurutransit.org/internal/logging"
	"gati.bengalurutransit.org/internal/manifest"
	"gati.bengalurutransit.org/internal/traveltime"
)

func main() {
	_ = godotenv.Load()

	manifestPath := flag.String("manifest", envString("GATI_INGEST_MANIFEST", "ingest.yml"), "Path to the ingest manifest")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)
	slog.SetDefault(logger)
	logger = logger.With(slog.String("component", "ingest"))

	if err := run(*manifestPath, *verbose, logger); err != nil {
		logging.LogError(logger, "ingest failed", err)
		os.Exit(1)
	}
}

func run(manifestPath string, verbose bool, logger *slog.Logger) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	logging.LogOperation(logger, "manifest_loaded", slog.String("path", manifestPath))

	manager, err := datasets.InitManager(datasets.Config{
		WardsPath:       m.Wards.Path,
		RoutesPath:      m.Routes.Path,
		RoutesFormat:    m.Routes.Format,
		TravelTimesPath: m.TravelTimes.Path,
		TravelTimesURL:  m.TravelTimes.URL,
		AuthHeaderKey:   m.TravelTimes.AuthHeaderName,
		AuthHeaderValue: m.TravelTimes.AuthHeaderValue,
		DBPath:          m.Database.Path,
		Env:             appconf.Development,
		Verbose:         verbose,
	})
	if err != nil {
		return err
	}
	defer manager.Shutdown()

	pairs := manager.Estimator.PlanPairs(manager.Routes.All())
	logging.LogOperation(logger, "ward_pairs_planned", slog.Int("pairs", len(pairs)))

	ctx := context.Background()
	if err := manager.MovementDB.StoreWardPairs(ctx, pairs); err != nil {
		return fmt.Errorf("failed to store ward pairs: %w", err)
	}

	if m.Artifacts.WardPairsPath != "" {
		if err := traveltime.WritePairsArtifact(m.Artifacts.WardPairsPath, pairs); err != nil {
			return err
		}
		logging.LogOperation(logger, "ward_pairs_artifact_written",
			slog.String("path", m.Artifacts.WardPairsPath))
	}

	counts, err := manager.MovementDB.TableCounts()
	if err != nil {
		return fmt.Errorf("failed to count imported rows: %w", err)
	}
	attrs := []slog.Attr{slog.String("db", manager.MovementDB.GetDBPath())}
	for table, count := range counts {
		attrs = append(attrs, slog.Int(table, count))
	}
	logging.LogOperation(logger, "ingest_complete", attrs...)

	return nil
}

func envString(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
