package app

import (
	"crypto/subtle"
	"net/http"
)

// RequestHasInvalidAPIKey checks the request's "key" query parameter against
// the configured API keys.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return app.IsInvalidAPIKey(r.URL.Query().Get("key"))
}

// IsInvalidAPIKey reports whether key matches none of the configured API
// keys. An empty key is always invalid; with no keys configured every
// request is rejected.
func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		// Use constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) == 1 {
			return false
		}
	}

	return true
}
