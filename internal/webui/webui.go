// Package webui serves the non-API surface: a debug data browser for
// development and the deployment's static landing pages.
package webui

import (
	"net/http"

	"gati.bengalurutransit.org/internal/app"
)

// WebUI embeds the core Application so handlers can reach the loaded
// datasets and configuration.
type WebUI struct {
	*app.Application
}

// SetWebUIRoutes registers the web UI endpoints.
func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /debug/data", webUI.debugIndexHandler)
	mux.HandleFunc("GET /static/{file}", webUI.staticHandler)
}
