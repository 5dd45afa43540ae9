package routes

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gati.bengalurutransit.org/internal/logging"
)

const (
	bmtcColumnRouteNumber = "route_no"
	bmtcColumnOrigin      = "origin"
	bmtcColumnDestination = "destination"
	bmtcColumnMapJSON     = "map_json_content"
)

// LoadBMTC reads the BMTC open-data route dump from a CSV file on disk.
func LoadBMTC(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open route dataset %s: %w", path, err)
	}
	defer logging.SafeCloseWithLogging(f, nil, "route dataset")

	store, err := ParseBMTC(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse route dataset %s: %w", path, err)
	}
	return store, nil
}

// ParseBMTC parses the BMTC route dump. The first record is a header row;
// columns are located by name so reordered exports still load. The map JSON
// column regularly embeds commas, quotes and newlines, all of which the CSV
// quoting rules cover.
func ParseBMTC(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{bmtcColumnRouteNumber, bmtcColumnMapJSON} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("header row is missing column %q", required)
		}
	}

	var loaded []Route
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record at line %d: %w", line, err)
		}

		number := strings.TrimSpace(field(record, columns, bmtcColumnRouteNumber))
		if number == "" {
			continue
		}
		loaded = append(loaded, Route{
			Number:      number,
			Origin:      strings.TrimSpace(field(record, columns, bmtcColumnOrigin)),
			Destination: strings.TrimSpace(field(record, columns, bmtcColumnDestination)),
			MapJSON:     field(record, columns, bmtcColumnMapJSON),
		})
	}
	return NewStore(loaded), nil
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
