package restapi

import (
	"errors"
	"net/http"

	"makanmap.sg/internal/aggregate"
	"makanmap.sg/internal/models"
)

// foodForStationHandler returns the four-bucket food aggregation for one
// station.
func (api *RestAPI) foodForStationHandler(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {"station id is required"},
		})
		return
	}

	page, err := api.aggregator.ForStation(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, aggregate.ErrStationNotFound) {
			api.notFoundResponse(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponseWithClock(page, api.Clock))
}
