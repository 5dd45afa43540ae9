package datasets

import (
	"path/filepath"
	"strings"

	"gati.bengalurutransit.org/internal/appconf"
)

// Route dataset formats accepted by the loader.
const (
	FormatBMTC = "bmtc"
	FormatGTFS = "gtfs"
)

// Config names the datasets the manager loads at startup.
type Config struct {
	// WardsPath is the ward boundary GeoJSON file.
	WardsPath string

	// RoutesPath is the route dataset; RoutesFormat selects its parser
	// (FormatBMTC or FormatGTFS). An empty format is inferred from the
	// file extension: .zip means a GTFS feed, anything else the BMTC CSV
	// dump.
	RoutesPath   string
	RoutesFormat string

	// TravelTimesPath points at a local measurement file: either the JSON
	// artifact keyed "srcId-dstId", or an aggregate CSV (optionally
	// gzipped) imported through the measurement database.
	// TravelTimesURL downloads the aggregate instead; the auth header
	// pair is attached when both parts are set. With no source configured
	// the service starts with an empty matrix and every estimate reports
	// missing data.
	TravelTimesPath string
	TravelTimesURL  string
	AuthHeaderKey   string
	AuthHeaderValue string

	// DBPath is the measurement database location; empty means in-memory.
	DBPath string

	Env     appconf.Environment
	Verbose bool
}

// FromConfigData copies the dataset half of a configuration file into a
// Config.
func FromConfigData(data appconf.DatasetConfigData) Config {
	return Config{
		WardsPath:       data.WardsPath,
		RoutesPath:      data.RoutesPath,
		RoutesFormat:    data.RoutesFormat,
		TravelTimesPath: data.TravelTimesPath,
		TravelTimesURL:  data.TravelTimesURL,
		AuthHeaderKey:   data.AuthHeaderKey,
		AuthHeaderValue: data.AuthHeaderValue,
		DBPath:          data.DBPath,
		Env:             data.Env,
		Verbose:         data.Verbose,
	}
}

func (c Config) routesFormat() string {
	if c.RoutesFormat != "" {
		return c.RoutesFormat
	}
	if strings.EqualFold(filepath.Ext(c.RoutesPath), ".zip") {
		return FormatGTFS
	}
	return FormatBMTC
}
