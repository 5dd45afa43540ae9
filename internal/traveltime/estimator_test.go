package traveltime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gati.bengalurutransit.org/internal/geo"
	"gati.bengalurutransit.org/internal/movement"
	"gati.bengalurutransit.org/internal/routes"
	"gati.bengalurutransit.org/internal/wards"
)

func squareWard(id int, name string, movementID int, minLng, minLat, maxLng, maxLat float64) wards.Ward {
	return wards.Ward{
		ID:         id,
		Name:       name,
		MovementID: movementID,
		Boundary: geo.MultiPolygon{{Exterior: geo.Ring{
			{X: minLng, Y: minLat},
			{X: maxLng, Y: minLat},
			{X: maxLng, Y: maxLat},
			{X: minLng, Y: maxLat},
		}}},
	}
}

// Three wards side by side along the longitude axis.
func testIndex() *wards.Index {
	return wards.NewIndex([]wards.Ward{
		squareWard(1, "Kempegowda Ward", 101, 77.50, 12.90, 77.60, 13.00),
		squareWard(2, "Shivajinagar", 102, 77.60, 12.90, 77.70, 13.00),
		squareWard(3, "Varthur", 103, 77.70, 12.90, 77.80, 13.00),
	})
}

func stopIn(lat, lng float64) routes.Stop {
	return routes.Stop{Position: geo.LatLng{Lat: lat, Lng: lng}}
}

func TestReduceStops_DeduplicatesKeepingFirstOccurrence(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(nil))

	stops := []routes.Stop{
		stopIn(12.95, 77.55), // ward 1
		stopIn(12.96, 77.56), // ward 1 again
		stopIn(12.95, 77.65), // ward 2
		stopIn(12.94, 77.55), // back through ward 1
		stopIn(12.95, 77.75), // ward 3
	}

	sequence := est.ReduceStops(stops)

	require.Len(t, sequence, 3)
	assert.Equal(t, wards.Ref{ID: 1, Name: "Kempegowda Ward"}, sequence[0])
	assert.Equal(t, wards.Ref{ID: 2, Name: "Shivajinagar"}, sequence[1])
	assert.Equal(t, wards.Ref{ID: 3, Name: "Varthur"}, sequence[2])

	assert.LessOrEqual(t, len(sequence), len(stops))
	for i := 0; i+1 < len(sequence); i++ {
		assert.NotEqual(t, sequence[i].ID, sequence[i+1].ID, "adjacent wards must differ")
	}
}

func TestReduceStops_SingleWardRoute(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(nil))

	sequence := est.ReduceStops([]routes.Stop{
		stopIn(12.91, 77.51),
		stopIn(12.95, 77.55),
		stopIn(12.99, 77.59),
	})

	require.Len(t, sequence, 1)
	assert.Equal(t, 1, sequence[0].ID)
}

func TestReduceStops_OutsideStopsCollapseToOnePseudoWard(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(nil))

	sequence := est.ReduceStops([]routes.Stop{
		stopIn(20.00, 80.00),
		stopIn(21.00, 81.00),
	})

	require.Len(t, sequence, 1)
	assert.False(t, sequence[0].Found())

	estimate := est.Aggregate(sequence)
	assert.Zero(t, estimate.TotalSeconds)
	assert.False(t, estimate.MissingData)
}

func TestReduce_MapJSONRoute(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(nil))

	route := &routes.Route{
		Number: "335-E",
		MapJSON: `[
			{"busstop": "A", "latlons": ["12.95", "77.55"]},
			{"busstop": "B", "latlons": ["12.95", "77.65"]}
		]`,
	}

	sequence := est.Reduce(route)
	require.Len(t, sequence, 2)
	assert.Equal(t, 1, sequence[0].ID)
	assert.Equal(t, 2, sequence[1].ID)
}

func TestReduce_BrokenGeometryIsEmptyNotError(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(nil))

	for name, route := range map[string]*routes.Route{
		"no map JSON":        {Number: "a"},
		"malformed map JSON": {Number: "b", MapJSON: `[{"busstop"`},
		"bad coordinates":    {Number: "c", MapJSON: `[{"busstop": "A", "latlons": ["x", "y"]}]`},
	} {
		sequence := est.Reduce(route)
		assert.NotNil(t, sequence, name)
		assert.Empty(t, sequence, name)
	}
}

func TestAggregate_PartialMeasurements(t *testing.T) {
	// The canonical partial-data case: 1->2 measured at 600s, 2->3 never
	// measured. The partial sum comes back with the missing flag set.
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(map[movement.PairKey]float64{
		{Src: 1, Dst: 2}: 600,
	}))

	estimate := est.Aggregate([]wards.Ref{{ID: 1}, {ID: 2}, {ID: 3}})

	assert.InDelta(t, 600, estimate.TotalSeconds, 1e-9)
	assert.True(t, estimate.MissingData)
}

func TestAggregate_AllMeasured(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(map[movement.PairKey]float64{
		{Src: 1, Dst: 2}: 600,
		{Src: 2, Dst: 3}: 240.5,
	}))

	estimate := est.Aggregate([]wards.Ref{{ID: 1}, {ID: 2}, {ID: 3}})

	assert.InDelta(t, 840.5, estimate.TotalSeconds, 1e-9)
	assert.False(t, estimate.MissingData)
}

func TestAggregate_DirectionalLookup(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(map[movement.PairKey]float64{
		{Src: 2, Dst: 1}: 900,
	}))

	estimate := est.Aggregate([]wards.Ref{{ID: 1}, {ID: 2}})
	assert.Zero(t, estimate.TotalSeconds, "reverse measurement must not satisfy a forward pair")
	assert.True(t, estimate.MissingData)
}

func TestAggregate_ShortSequences(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(nil))

	for name, sequence := range map[string][]wards.Ref{
		"empty":     {},
		"singleton": {{ID: 5, Name: "Koramangala"}},
	} {
		estimate := est.Aggregate(sequence)
		assert.Zero(t, estimate.TotalSeconds, name)
		assert.False(t, estimate.MissingData, name)
	}
}

func TestForRoute(t *testing.T) {
	est := NewEstimator(testIndex(), movement.NewMatrixFromMeans(map[movement.PairKey]float64{
		{Src: 1, Dst: 2}: 600,
	}))

	route := &routes.Route{
		Number: "335-E",
		Stops: []routes.Stop{
			stopIn(12.95, 77.55),
			stopIn(12.95, 77.65),
		},
	}

	estimate, sequence := est.ForRoute(route)

	require.Len(t, sequence, 2)
	assert.InDelta(t, 600, estimate.TotalSeconds, 1e-9)
	assert.False(t, estimate.MissingData)
}
