package restapi

import (
	"errors"
	"net/http"

	"makanmap.sg/internal/models"
	"makanmap.sg/internal/search"
	"makanmap.sg/internal/utils"
)

// searchFoodHandler runs a cross-station food search. Pagination applies to
// stations, not venues.
func (api *RestAPI) searchFoodHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	fieldErrors := make(map[string][]string)
	page := utils.ParseIntParam(queryParams, "page", 1, fieldErrors)
	pageSize := utils.ParseIntParam(queryParams, "pageSize", models.DefaultSearchPageSize, fieldErrors)

	if page < 1 {
		fieldErrors["page"] = append(fieldErrors["page"], "must be at least 1")
	}
	if pageSize < 1 {
		fieldErrors["pageSize"] = append(fieldErrors["pageSize"], "must be at least 1")
	} else if pageSize > models.MaxSearchPageSize {
		fieldErrors["pageSize"] = append(fieldErrors["pageSize"], "must not exceed 100")
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	// A station parameter drills into one station's matching venues instead
	// of returning the ranked station counts.
	if stationID := queryParams.Get("station"); stationID != "" {
		venues, err := api.searcher.DrillIn(r.Context(), stationID, queryParams.Get("query"), int64(pageSize))
		if err != nil {
			if errors.Is(err, search.ErrQueryTooShort) {
				api.validationErrorResponse(w, r, map[string][]string{
					"query": {err.Error()},
				})
				return
			}
			api.serverErrorResponse(w, r, err)
			return
		}
		api.sendResponse(w, r, models.NewListResponseWithClock(venues, api.Clock))
		return
	}

	results, err := api.searcher.Search(r.Context(), queryParams.Get("query"), page, pageSize)
	if err != nil {
		if errors.Is(err, search.ErrQueryTooShort) {
			api.validationErrorResponse(w, r, map[string][]string{
				"query": {err.Error()},
			})
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponseWithClock(results, api.Clock))
}
