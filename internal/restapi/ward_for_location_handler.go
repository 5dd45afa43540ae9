package restapi

import (
	"net/http"
	"strconv"

	"gati.bengalurutransit.org/internal/geo"
	"gati.bengalurutransit.org/internal/models"
)

// wardForLocationHandler resolves a lat/lon query position to the ward
// containing it. Positions outside every ward are a normal answer, not an
// error: the entry comes back with found=false.
func (api *RestAPI) wardForLocationHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fieldErrors := map[string][]string{}

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		fieldErrors["lat"] = []string{"must be a valid floating point number"}
	} else if lat < models.MinLatitude || lat > models.MaxLatitude {
		fieldErrors["lat"] = []string{"must be between -90 and 90"}
	}

	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		fieldErrors["lon"] = []string{"must be a valid floating point number"}
	} else if lon < models.MinLongitude || lon > models.MaxLongitude {
		fieldErrors["lon"] = []string{"must be between -180 and 180"}
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ref := api.Datasets.Wards.Locate(geo.LatLng{Lat: lat, Lng: lon})
	api.Metrics.RecordWardLocate(ref.Found())

	entry := models.NewWardForLocationEntry(ref.Found(), ref.ID, ref.Name, lat, lon)

	references := models.NewEmptyReferences()
	if ward, ok := api.Datasets.Wards.ByID(ref.ID); ok {
		references.Wards = append(references.Wards, models.NewWardReference(ward.ID, ward.Name, ward.MovementID))
	}

	response := models.NewEntryResponse(entry, references, api.Clock)
	api.sendResponse(w, r, response)
}
