package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gati.bengalurutransit.org/internal/logging"
	"gati.bengalurutransit.org/internal/models"
)

// logError records an unexpected error together with the request that
// triggered it.
func (api *RestAPI) logError(r *http.Request, err error) {
	logging.LogError(api.Logger, "request failed", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

// serverErrorResponse handles unexpected runtime errors with a plain 500.
// It deliberately avoids the JSON envelope so a broken encoder cannot
// recurse back into itself.
func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	http.Error(w, "the server encountered a problem and could not process your request", http.StatusInternalServerError)
}

// validationErrorResponse rejects a request whose parameters failed
// validation, listing the offending fields in the response data.
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)

	response := models.ResponseModel{
		Code:        http.StatusBadRequest,
		CurrentTime: models.ResponseCurrentTime(api.Clock),
		Data:        map[string]interface{}{"fieldErrors": fieldErrors},
		Text:        "invalid request parameters",
		Version:     2,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}

// invalidAPIKeyResponse rejects requests whose API key is missing or not
// configured.
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendUnauthorized(w, r)
}
