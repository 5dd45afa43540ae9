package restapi

import (
	"net/http"

	"gati.bengalurutransit.org/internal/models"
	"gati.bengalurutransit.org/internal/utils"
)

// routeHandler returns a single route's summary entry.
func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	routeNumber := utils.ExtractRouteNumberFromParams(r)

	route, ok := api.Datasets.Routes.ByNumber(routeNumber)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	stops, err := route.StopPositions()
	hasGeometry := err == nil && len(stops) > 0

	entry := models.NewRouteEntry(route.Number, route.Origin, route.Destination, len(stops), hasGeometry)

	response := models.NewEntryResponse(entry, models.NewEmptyReferences(), api.Clock)
	api.sendResponse(w, r, response)
}
