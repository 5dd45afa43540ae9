// Package routes loads BMTC bus routes and their ordered stop geometry from
// either the BMTC open-data dump or a GTFS static feed.
package routes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gati.bengalurutransit.org/internal/geo"
)

// Stop is one bus stop on a route.
type Stop struct {
	Name     string
	Position geo.LatLng
}

// Route is a single bus line with its ordered stop sequence.
type Route struct {
	Number      string
	Origin      string
	Destination string

	// MapJSON is the raw stop-geometry blob carried by the BMTC dump,
	// parsed on demand by StopPositions. Routes loaded from GTFS fill
	// Stops directly and leave MapJSON empty.
	MapJSON string
	Stops   []Stop
}

// rawStop mirrors one entry of the BMTC map JSON: a stop name plus
// coordinates serialized as decimal strings in (lat, lng) order.
type rawStop struct {
	BusStop string   `json:"busstop"`
	LatLons []string `json:"latlons"`
}

// StopPositions returns the route's ordered stops. BMTC dump routes parse
// their map JSON here; a missing or malformed blob is an error, which
// callers that only care about "no usable geometry" can treat as an empty
// route. The receiver is never mutated, so concurrent calls are safe.
func (r *Route) StopPositions() ([]Stop, error) {
	if r.Stops != nil {
		return r.Stops, nil
	}

	if strings.TrimSpace(r.MapJSON) == "" {
		return nil, fmt.Errorf("route %s has no stop geometry", r.Number)
	}

	var raw []rawStop
	if err := json.Unmarshal([]byte(r.MapJSON), &raw); err != nil {
		return nil, fmt.Errorf("route %s: invalid map JSON: %w", r.Number, err)
	}

	stops := make([]Stop, 0, len(raw))
	for i, rs := range raw {
		if len(rs.LatLons) < 2 {
			return nil, fmt.Errorf("route %s: stop %d has %d coordinates, need 2", r.Number, i, len(rs.LatLons))
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(rs.LatLons[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("route %s: stop %d latitude: %w", r.Number, i, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(rs.LatLons[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("route %s: stop %d longitude: %w", r.Number, i, err)
		}
		stops = append(stops, Stop{
			Name:     rs.BusStop,
			Position: geo.LatLng{Lat: lat, Lng: lng},
		})
	}
	return stops, nil
}

// Path returns the stop positions in route order, or nil when the route has
// no usable geometry.
func (r *Route) Path() []geo.LatLng {
	stops, err := r.StopPositions()
	if err != nil {
		return nil
	}
	path := make([]geo.LatLng, len(stops))
	for i, s := range stops {
		path[i] = s.Position
	}
	return path
}
