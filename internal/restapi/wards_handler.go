package restapi

import (
	"net/http"

	"gati.bengalurutransit.org/internal/models"
)

// wardsHandler lists every ward in the loaded boundary dataset.
func (api *RestAPI) wardsHandler(w http.ResponseWriter, r *http.Request) {
	all := api.Datasets.Wards.All()

	list := make([]models.WardReference, 0, len(all))
	for i := range all {
		ward := &all[i]
		list = append(list, models.NewWardReference(ward.ID, ward.Name, ward.MovementID))
	}

	response := models.NewListResponse(list, models.NewEmptyReferences(), false, api.Clock)
	api.sendResponse(w, r, response)
}
