package restapi

import (
	"net/http"

	"gati.bengalurutransit.org/internal/models"
)

// Declare a handler which writes a JSON response with information about the
// current time.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	// Health Check: fail if the datasets never finished loading
	if !api.Datasets.IsReady() {
		http.Error(w, "Service Unavailable: datasets not loaded", http.StatusServiceUnavailable)
		return
	}

	timeData := models.NewCurrentTimeData(api.Clock.Now())
	response := models.NewOKResponse(timeData, api.Clock)

	api.sendResponse(w, r, response)
}
