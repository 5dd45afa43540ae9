package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestRouteGeometryHandlerRequiresValidApiKey(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/route/335-E/geometry?key=invalid")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}

func TestRouteGeometryHandlerEndToEnd(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/route/335-E/geometry?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)

	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "335-E", entry["routeNumber"])
	assert.Equal(t, 3.0, entry["stopCount"])

	encoded, ok := entry["encodedPolyline"].(string)
	require.True(t, ok)
	require.NotEmpty(t, encoded)

	// The polyline must decode back to the stop positions
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDelta(t, 12.95, coords[0][0], 0.00001)
	assert.InDelta(t, 77.55, coords[0][1], 0.00001)
	assert.InDelta(t, 12.95, coords[2][0], 0.00001)
	assert.InDelta(t, 77.75, coords[2][1], 0.00001)

	// Two ~10.9km legs along the 12.95 parallel
	lengthMeters, ok := entry["lengthMeters"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 21800, lengthMeters, 400)
}

func TestRouteGeometryHandlerRouteWithoutGeometry(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/route/MF-12/geometry?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}

func TestRouteGeometryHandlerUnknownRoute(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/v1/route/999-ZZ/geometry?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}
