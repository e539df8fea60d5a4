package rest

import "net/http"

// GetLocations handles GET /api/v1/locations
func (h *PredictionHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	items := h.getLocationsUC.Execute(r.Context())
	RespondWithJSON(w, http.StatusOK, LocationsResponse{Locations: toLocationResponses(items)})
}

// GetFormOptions handles GET /api/v1/bounds
func (h *PredictionHandler) GetFormOptions(w http.ResponseWriter, r *http.Request) {
	opts := h.getFormOptsUC.Execute(r.Context())
	RespondWithJSON(w, http.StatusOK, toFormOptionsResponse(opts))
}
