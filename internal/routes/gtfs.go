package routes

import (
	"fmt"
	"os"

	"github.com/OneBusAway/go-gtfs"
	"gati.bengalurutransit.org/internal/geo"
)

// LoadGTFS reads routes from a zipped GTFS static feed. Stop sequences come
// from scheduled trips, so feeds without any trips produce routes with no
// geometry.
func LoadGTFS(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GTFS feed %s: %w", path, err)
	}
	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS feed %s: %w", path, err)
	}
	return FromStatic(staticData), nil
}

// FromStatic builds a Store from parsed GTFS data. Each route's stop
// sequence is taken from its longest scheduled trip, which for BMTC-style
// feeds is the full end-to-end run rather than a short working.
func FromStatic(staticData *gtfs.Static) *Store {
	longest := make(map[string]*gtfs.ScheduledTrip, len(staticData.Routes))
	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil {
			continue
		}
		current, ok := longest[trip.Route.Id]
		if !ok || len(trip.StopTimes) > len(current.StopTimes) {
			longest[trip.Route.Id] = trip
		}
	}

	loaded := make([]Route, 0, len(staticData.Routes))
	for i := range staticData.Routes {
		r := &staticData.Routes[i]
		number := r.ShortName
		if number == "" {
			number = r.Id
		}
		route := Route{Number: number, Stops: []Stop{}}
		if trip, ok := longest[r.Id]; ok {
			for _, st := range trip.StopTimes {
				s := st.Stop
				if s == nil || s.Latitude == nil || s.Longitude == nil {
					continue
				}
				route.Stops = append(route.Stops, Stop{
					Name:     s.Name,
					Position: geo.LatLng{Lat: *s.Latitude, Lng: *s.Longitude},
				})
			}
		}
		if n := len(route.Stops); n > 0 {
			route.Origin = route.Stops[0].Name
			route.Destination = route.Stops[n-1].Name
		}
		loaded = append(loaded, route)
	}
	return NewStore(loaded)
}
