package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gati.bengalurutransit.org/internal/appconf"
	"gati.bengalurutransit.org/internal/datasets"
)

func main() {
	// A .env file, when present, seeds the environment before flag
	// defaults are read. Missing files are fine.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("GATI_CONFIG"), "Path to a JSON configuration file (overrides all other flags)")
	port := flag.Int("port", envInt("GATI_PORT", 4000), "API server port")
	envFlag := flag.String("env", envString("GATI_ENV", "development"), "Environment (development|test|production)")
	apiKeys := flag.String("api-keys", os.Getenv("GATI_API_KEYS"), "Comma-separated list of valid API keys")
	rateLimit := flag.Int("rate-limit", envInt("GATI_RATE_LIMIT", 10), "Maximum requests per second per API key")
	verbose := flag.Bool("verbose", envBool("GATI_VERBOSE"), "Enable debug logging")
	wardsPath := flag.String("wards", envString("GATI_WARDS_PATH", "data/bangalore_wards.json"), "Ward boundary GeoJSON file")
	routesPath := flag.String("routes", envString("GATI_ROUTES_PATH", "data/routes.csv"), "Route dataset (BMTC CSV dump or GTFS zip)")
	routesFormat := flag.String("routes-format", os.Getenv("GATI_ROUTES_FORMAT"), "Route dataset format (bmtc|gtfs; inferred when empty)")
	travelTimesPath := flag.String("travel-times", os.Getenv("GATI_TRAVEL_TIMES_PATH"), "Travel time source (JSON artifact or aggregate CSV)")
	travelTimesURL := flag.String("travel-times-url", os.Getenv("GATI_TRAVEL_TIMES_URL"), "Travel time aggregate download URL")
	dbPath := flag.String("db", os.Getenv("GATI_DB_PATH"), "Measurement database path (empty for in-memory)")
	flag.Parse()

	var cfg appconf.Config
	var datasetsConfig datasets.Config

	if *configPath != "" {
		fileConfig, err := appconf.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = fileConfig.ToAppConfig()
		datasetsConfig = datasets.FromConfigData(fileConfig.ToDatasetConfigData())
	} else {
		env := appconf.EnvFlagToEnvironment(*envFlag)
		cfg = appconf.Config{
			Port:      *port,
			Env:       env,
			ApiKeys:   ParseAPIKeys(*apiKeys),
			Verbose:   *verbose,
			RateLimit: *rateLimit,
		}
		datasetsConfig = datasets.Config{
			WardsPath:       *wardsPath,
			RoutesPath:      *routesPath,
			RoutesFormat:    *routesFormat,
			TravelTimesPath: *travelTimesPath,
			TravelTimesURL:  *travelTimesURL,
			AuthHeaderKey:   os.Getenv("GATI_AUTH_HEADER_NAME"),
			AuthHeaderValue: os.Getenv("GATI_AUTH_HEADER_VALUE"),
			DBPath:          *dbPath,
			Env:             env,
			Verbose:         *verbose,
		}
	}

	coreApp, err := BuildApplication(cfg, datasetsConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	srv, api := CreateServer(coreApp, cfg)
	if err := Run(srv, api, coreApp); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envString(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(name string) bool {
	value, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && value
}
