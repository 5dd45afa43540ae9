package restapi

import (
	"net/http"

	"gati.bengalurutransit.org/internal/models"
	"gati.bengalurutransit.org/internal/utils"
)

// routeWardsHandler returns the ordered ward sequence a route passes
// through. Stops outside every ward collapse into a single "outside
// coverage" marker reported on the entry rather than in the ward list.
func (api *RestAPI) routeWardsHandler(w http.ResponseWriter, r *http.Request) {
	routeNumber := utils.ExtractRouteNumberFromParams(r)

	route, ok := api.Datasets.Routes.ByNumber(routeNumber)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	sequence := api.Datasets.Estimator.Reduce(route)

	wardIDs := make([]int, 0, len(sequence))
	references := models.NewEmptyReferences()
	outsideCoverage := false
	for _, ref := range sequence {
		if !ref.Found() {
			outsideCoverage = true
			continue
		}
		wardIDs = append(wardIDs, ref.ID)

		movementID := 0
		if ward, ok := api.Datasets.Wards.ByID(ref.ID); ok {
			movementID = ward.MovementID
		}
		references.Wards = append(references.Wards, models.NewWardReference(ref.ID, ref.Name, movementID))
	}

	entry := models.NewRouteWardsEntry(route.Number, wardIDs, outsideCoverage)

	response := models.NewEntryResponse(entry, references, api.Clock)
	api.sendResponse(w, r, response)
}
