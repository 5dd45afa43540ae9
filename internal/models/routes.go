package models

// RouteEntry describes one bus route in list and detail responses.
type RouteEntry struct {
	RouteNumber string `json:"routeNumber"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	StopCount   int    `json:"stopCount"`
	HasGeometry bool   `json:"hasGeometry"`
}

// NewRouteEntry creates a route entry. StopCount zero with HasGeometry false
// marks a route whose stop geometry is missing or unparsable.
func NewRouteEntry(routeNumber, origin, destination string, stopCount int, hasGeometry bool) RouteEntry {
	return RouteEntry{
		RouteNumber: routeNumber,
		Origin:      origin,
		Destination: destination,
		StopCount:   stopCount,
		HasGeometry: hasGeometry,
	}
}

// RouteGeometryEntry is the payload of the route geometry endpoint: the stop
// path as an encoded polyline plus its spherical length.
type RouteGeometryEntry struct {
	RouteNumber     string  `json:"routeNumber"`
	EncodedPolyline string  `json:"encodedPolyline"`
	LengthMeters    float64 `json:"lengthMeters"`
	StopCount       int     `json:"stopCount"`
}

// NewRouteGeometryEntry creates the geometry payload.
func NewRouteGeometryEntry(routeNumber, encodedPolyline string, lengthMeters float64, stopCount int) RouteGeometryEntry {
	return RouteGeometryEntry{
		RouteNumber:     routeNumber,
		EncodedPolyline: encodedPolyline,
		LengthMeters:    lengthMeters,
		StopCount:       stopCount,
	}
}
