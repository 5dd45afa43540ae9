package models

import (
	"fmt"
	"math"
)

// TripTimeEntry is the payload of the trip-time endpoint: the end-to-end
// travel time estimate for one route.
type TripTimeEntry struct {
	RouteNumber  string  `json:"routeNumber"`
	Origin       string  `json:"origin,omitempty"`
	Destination  string  `json:"destination,omitempty"`
	TotalSeconds float64 `json:"totalSeconds"`
	ReadableTime string  `json:"readableTime"`
	// MissingData is true when at least one ward pair along the route had
	// no measurement, so TotalSeconds is a partial sum.
	MissingData bool  `json:"missingData"`
	WardIds     []int `json:"wardIds"`
}

// NewTripTimeEntry creates the trip-time payload. wardIds is the route's
// deduplicated ward sequence; the matching ward details belong in the
// response references.
func NewTripTimeEntry(routeNumber, origin, destination string, totalSeconds float64, missingData bool, wardIds []int) TripTimeEntry {
	if wardIds == nil {
		wardIds = []int{}
	}
	return TripTimeEntry{
		RouteNumber:  routeNumber,
		Origin:       origin,
		Destination:  destination,
		TotalSeconds: totalSeconds,
		ReadableTime: FormatTravelTime(totalSeconds),
		MissingData:  missingData,
		WardIds:      wardIds,
	}
}

// RouteWardsEntry is the payload of the route wards endpoint: the ordered,
// deduplicated ward sequence a route passes through. OutsideCoverage reports
// whether any stop fell outside every ward.
type RouteWardsEntry struct {
	RouteNumber     string `json:"routeNumber"`
	WardIds         []int  `json:"wardIds"`
	OutsideCoverage bool   `json:"outsideCoverage"`
}

// NewRouteWardsEntry creates the ward sequence payload.
func NewRouteWardsEntry(routeNumber string, wardIds []int, outsideCoverage bool) RouteWardsEntry {
	if wardIds == nil {
		wardIds = []int{}
	}
	return RouteWardsEntry{
		RouteNumber:     routeNumber,
		WardIds:         wardIds,
		OutsideCoverage: outsideCoverage,
	}
}

// FormatTravelTime renders a duration in seconds as hours and minutes,
// rounded to the nearest minute.
func FormatTravelTime(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
