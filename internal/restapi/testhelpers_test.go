package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gati.bengalurutransit.org/internal/app"
	"gati.bengalurutransit.org/internal/appconf"
	"gati.bengalurutransit.org/internal/clock"
	"gati.bengalurutransit.org/internal/datasets"
	"gati.bengalurutransit.org/internal/logging"
	"gati.bengalurutransit.org/internal/metrics"
	"gati.bengalurutransit.org/internal/models"
)

// createTestApi builds a RestAPI over the shared test fixtures: three square
// wards, three routes, and the ward-keyed travel time artifact.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	datasetsConfig := datasets.Config{
		WardsPath:       models.GetFixturePath(t, "wards.geojson"),
		RoutesPath:      models.GetFixturePath(t, "routes.csv"),
		TravelTimesPath: models.GetFixturePath(t, "travel-times.json"),
		Env:             appconf.Test,
	}

	manager, err := datasets.InitManager(datasetsConfig)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			ApiKeys:   []string{"TEST"},
			RateLimit: 100,
		},
		DatasetsConfig: datasetsConfig,
		Logger:         logging.NewStructuredLogger(io.Discard, slog.LevelError),
		Datasets:       manager,
		Clock:          clock.RealClock{},
		Metrics:        metrics.New(),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

// serveApiAndRetrieveEndpoint spins up a test server around the API's
// routes, issues one GET, and decodes the response envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	mux := http.NewServeMux()
	api.SetRoutes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))

	return resp, model
}

// serveAndRetrieveEndpoint is the one-shot variant for tests that don't need
// the API instance afterwards.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()

	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}
