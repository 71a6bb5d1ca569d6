package restapi

import (
	"database/sql"
	"errors"
	"net/http"

	"makanmap.sg/internal/models"
	"makanmap.sg/internal/reconcile"
)

// reconcileStationHandler triggers a reconciliation pass for one station.
// A pass already in flight for the same station is a 409, not a queue.
func (api *RestAPI) reconcileStationHandler(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {"station id is required"},
		})
		return
	}

	if _, err := api.VenueDB.Queries.GetStation(r.Context(), stationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.notFoundResponse(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	report, err := api.reconciler.ReconcileStation(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, reconcile.ErrPassInFlight) {
			api.conflictResponse(w, r, "reconciliation already in flight")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponseWithClock(report, api.Clock))
}

// reconcileAllHandler triggers a pass over every station.
func (api *RestAPI) reconcileAllHandler(w http.ResponseWriter, r *http.Request) {
	report, err := api.reconciler.ReconcileAll(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponseWithClock(report, api.Clock))
}

// reconcileActionsHandler returns the audit trail for one station, newest
// first.
func (api *RestAPI) reconcileActionsHandler(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		api.validationErrorResponse(w, r, map[string][]string{
			"id": {"station id is required"},
		})
		return
	}

	if _, err := api.VenueDB.Queries.GetStation(r.Context(), stationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.notFoundResponse(w, r)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	actions, err := api.reconciler.ActionsForStation(r.Context(), stationID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewListResponseWithClock(actions, api.Clock))
}
