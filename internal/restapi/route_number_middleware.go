package restapi

import (
	"net/http"

	"gati.bengalurutransit.org/internal/utils"
)

// ValidateRouteNumberMiddleware extracts the {routeNumber} param, validates
// it against safety rules, and injects it into the context. If validation
// fails, it returns 400.
func (api *RestAPI) ValidateRouteNumberMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := utils.ExtractRouteNumberFromParams(r)

		if err := utils.ValidateRouteNumber(number); err != nil {
			fieldErrors := map[string][]string{
				"routeNumber": {err.Error()},
			}
			api.validationErrorResponse(w, r, fieldErrors)
			return
		}

		ctx := utils.WithRouteNumber(r.Context(), number)
		next(w, r.WithContext(ctx))
	}
}
