package appconf

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONConfig mirrors the on-disk configuration file. Flags override nothing
// here; a file, when given, is the single source of configuration.
type JSONConfig struct {
	Port            int      `json:"port"`
	Env             string   `json:"env"`
	ApiKeys         []string `json:"api-keys"`
	RateLimit       int      `json:"rate-limit"`
	Verbose         bool     `json:"verbose"`
	WardsPath       string   `json:"wards-path"`
	RoutesPath      string   `json:"routes-path"`
	RoutesFormat    string   `json:"routes-format"`
	TravelTimesPath string   `json:"travel-times-path"`
	TravelTimesURL  string   `json:"travel-times-url"`
	AuthHeaderKey   string   `json:"auth-header-name"`
	AuthHeaderValue string   `json:"auth-header-value"`
	DBPath          string   `json:"db-path"`
}

// DatasetConfigData carries the dataset-facing half of a JSONConfig. The
// datasets package defines its own Config; commands copy these values over.
type DatasetConfigData struct {
	WardsPath       string
	RoutesPath      string
	RoutesFormat    string
	TravelTimesPath string
	TravelTimesURL  string
	AuthHeaderKey   string
	AuthHeaderValue string
	DBPath          string
	Env             Environment
	Verbose         bool
}

// LoadFromFile reads and validates a JSON configuration file.
func LoadFromFile(path string) (*JSONConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg JSONConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *JSONConfig) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	switch c.Env {
	case "", "development", "dev", "test", "production", "prod":
	default:
		return fmt.Errorf("unknown environment %q", c.Env)
	}

	switch c.RoutesFormat {
	case "", "bmtc", "gtfs":
	default:
		return fmt.Errorf("unknown routes format %q", c.RoutesFormat)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit %d must not be negative", c.RateLimit)
	}

	return nil
}

// ToAppConfig converts the file values to the application config.
func (c *JSONConfig) ToAppConfig() Config {
	keys := c.ApiKeys
	if keys == nil {
		keys = []string{}
	}
	return Config{
		Port:      c.Port,
		Env:       EnvFlagToEnvironment(c.Env),
		ApiKeys:   keys,
		Verbose:   c.Verbose,
		RateLimit: c.RateLimit,
	}
}

// ToDatasetConfigData converts the file values to the dataset config half.
func (c *JSONConfig) ToDatasetConfigData() DatasetConfigData {
	return DatasetConfigData{
		WardsPath:       c.WardsPath,
		RoutesPath:      c.RoutesPath,
		RoutesFormat:    c.RoutesFormat,
		TravelTimesPath: c.TravelTimesPath,
		TravelTimesURL:  c.TravelTimesURL,
		AuthHeaderKey:   c.AuthHeaderKey,
		AuthHeaderValue: c.AuthHeaderValue,
		DBPath:          c.DBPath,
		Env:             EnvFlagToEnvironment(c.Env),
		Verbose:         c.Verbose,
	}
}
