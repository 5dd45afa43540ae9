package restapi

import (
	"net/http"

	"gati.bengalurutransit.org/internal/models"
)

// routesHandler lists every route in the loaded dataset.
func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	all := api.Datasets.Routes.All()

	list := make([]models.RouteEntry, 0, len(all))
	for i := range all {
		route := &all[i]
		stops, err := route.StopPositions()
		hasGeometry := err == nil && len(stops) > 0
		list = append(list, models.NewRouteEntry(route.Number, route.Origin, route.Destination, len(stops), hasGeometry))
	}

	response := models.NewListResponse(list, models.NewEmptyReferences(), false, api.Clock)
	api.sendResponse(w, r, response)
}
