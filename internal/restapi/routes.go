package restapi

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gati.bengalurutransit.org/internal/app"
	"gati.bengalurutransit.org/internal/models"
)

// RestAPI exposes the estimation service over HTTP. It embeds the core
// Application so handlers reach the datasets, clock, logger, and metrics
// directly.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI builds the API with a shared per-key rate limiter driven by the
// application's configured requests-per-second budget.
func NewRestAPI(app *app.Application) *RestAPI {
	api := &RestAPI{Application: app}
	api.rateLimiter = NewRateLimitMiddleware(app.Config.RateLimit, time.Second, nil, app.Clock)
	return api
}

// Shutdown stops the rate limiter's background cleanup goroutine.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

type handlerFunc func(w http.ResponseWriter, r *http.Request)

// rateLimitAndValidateAPIKey combines API key validation and rate limiting.
// The key check runs first so unauthorized requests never consume a client's
// rate budget.
func rateLimitAndValidateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	finalHandlerHttp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		finalHandler(w, r)
	})

	// Use the shared rate limiter instance
	var rateLimitedHandler http.Handler
	if api.rateLimiter != nil {
		rateLimitedHandler = api.rateLimiter.Handler()(finalHandlerHttp)
	} else {
		// Fallback for tests that don't use NewRestAPI constructor
		rateLimitedHandler = finalHandlerHttp
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		rateLimitedHandler.ServeHTTP(w, r)
	})
}

// withRouteNumber applies {routeNumber} path parameter validation before the
// standard rate limit and auth chain.
func withRouteNumber(api *RestAPI, handler http.HandlerFunc) http.Handler {
	return rateLimitAndValidateAPIKey(api, handlerFunc(api.ValidateRouteNumberMiddleware(handler)))
}

// SetRoutes registers all API endpoints.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	// Health check and metrics endpoints - no authentication required
	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", api.metricsHandler())

	// Routes without path parameter validation
	mux.Handle("GET /api/v1/current-time", CacheControlMiddleware(models.CacheDurationShort, rateLimitAndValidateAPIKey(api, api.currentTimeHandler)))
	mux.Handle("GET /api/v1/routes", CacheControlMiddleware(models.CacheDurationLong, rateLimitAndValidateAPIKey(api, api.routesHandler)))
	mux.Handle("GET /api/v1/wards", CacheControlMiddleware(models.CacheDurationLong, rateLimitAndValidateAPIKey(api, api.wardsHandler)))
	mux.Handle("GET /api/v1/ward-for-location", CacheControlMiddleware(models.CacheDurationShort, rateLimitAndValidateAPIKey(api, api.wardForLocationHandler)))

	// Routes keyed by a {routeNumber} path parameter
	mux.Handle("GET /api/v1/trip-time/{routeNumber}", CacheControlMiddleware(models.CacheDurationShort, withRouteNumber(api, api.tripTimeHandler)))
	mux.Handle("GET /api/v1/route/{routeNumber}", CacheControlMiddleware(models.CacheDurationLong, withRouteNumber(api, api.routeHandler)))
	mux.Handle("GET /api/v1/route/{routeNumber}/wards", CacheControlMiddleware(models.CacheDurationLong, withRouteNumber(api, api.routeWardsHandler)))
	mux.Handle("GET /api/v1/route/{routeNumber}/geometry", CacheControlMiddleware(models.CacheDurationLong, withRouteNumber(api, api.routeGeometryHandler)))
}

// metricsHandler serves the Prometheus registry when metrics are enabled,
// and 404s otherwise so scrapes against a bare test server fail loudly.
func (api *RestAPI) metricsHandler() http.Handler {
	if api.Metrics == nil || api.Metrics.Registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{})
}

// WithSecurityHeaders wraps a handler so every response carries baseline
// browser hardening headers.
func (api *RestAPI) WithSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}
