package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"makanmap.sg/internal/models"
)

// sendResponse serializes a response envelope as JSON. Serialization failure
// downgrades to a plain 500 because the envelope itself could not be built.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.logError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (api *RestAPI) logError(r *http.Request, err error) {
	api.Logger.Error("request error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
}

// errorResponse writes the standard envelope with an error code and message.
func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	response := models.NewResponseWithClock(status, data, message, api.Clock)
	api.sendResponse(w, r, response)
}

// validationErrorResponse reports malformed input with per-field messages.
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	data := map[string]interface{}{
		"fieldErrors": fieldErrors,
	}
	api.errorResponse(w, r, http.StatusBadRequest, "invalid request", data)
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	api.errorResponse(w, r, http.StatusNotFound, "resource not found", nil)
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	api.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request", nil)
}

func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.errorResponse(w, r, http.StatusUnauthorized, "permission denied", nil)
}

func (api *RestAPI) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusConflict, message, nil)
}
