package restapi

import (
	"net/http"

	"gati.bengalurutransit.org/internal/models"
	"gati.bengalurutransit.org/internal/utils"
)

// tripTimeHandler runs the full estimation pipeline for one route: stops
// reduce to a ward sequence, and the sequence aggregates into an end-to-end
// travel time. Wards the route passes through come back as references.
func (api *RestAPI) tripTimeHandler(w http.ResponseWriter, r *http.Request) {
	routeNumber := utils.ExtractRouteNumberFromParams(r)

	route, ok := api.Datasets.Routes.ByNumber(routeNumber)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	estimate, sequence := api.Datasets.Estimator.ForRoute(route)
	api.Metrics.RecordEstimate(estimate.MissingData)

	wardIDs := make([]int, 0, len(sequence))
	references := models.NewEmptyReferences()
	for _, ref := range sequence {
		if !ref.Found() {
			continue
		}
		wardIDs = append(wardIDs, ref.ID)

		movementID := 0
		if ward, ok := api.Datasets.Wards.ByID(ref.ID); ok {
			movementID = ward.MovementID
		}
		references.Wards = append(references.Wards, models.NewWardReference(ref.ID, ref.Name, movementID))
	}

	entry := models.NewTripTimeEntry(
		route.Number,
		route.Origin,
		route.Destination,
		estimate.TotalSeconds,
		estimate.MissingData,
		wardIDs,
	)

	response := models.NewEntryResponse(entry, references, api.Clock)
	api.sendResponse(w, r, response)
}
