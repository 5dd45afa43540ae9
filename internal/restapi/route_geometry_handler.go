package restapi

import (
	"net/http"

	"github.com/twpayne/go-polyline"

	"gati.bengalurutransit.org/internal/geo"
	"gati.bengalurutransit.org/internal/models"
	"gati.bengalurutransit.org/internal/utils"
)

// routeGeometryHandler returns a route's stop path as an encoded polyline
// with its great-circle length. Routes without usable geometry have no
// geometry resource, so they 404.
func (api *RestAPI) routeGeometryHandler(w http.ResponseWriter, r *http.Request) {
	routeNumber := utils.ExtractRouteNumberFromParams(r)

	route, ok := api.Datasets.Routes.ByNumber(routeNumber)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	path := route.Path()
	if len(path) == 0 {
		api.sendNotFound(w, r)
		return
	}

	coords := make([][]float64, len(path))
	for i, pt := range path {
		coords[i] = []float64{pt.Lat, pt.Lng}
	}
	encoded := string(polyline.EncodeCoords(coords))

	entry := models.NewRouteGeometryEntry(route.Number, encoded, geo.PathLength(path), len(path))

	response := models.NewEntryResponse(entry, models.NewEmptyReferences(), api.Clock)
	api.sendResponse(w, r, response)
}
