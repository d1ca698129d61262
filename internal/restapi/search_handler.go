package restapi

import (
	"errors"
	"net/http"

	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/utils"
	"spacetime.railviz.dev/internal/viewer"
)

// searchTrainHandler finds a train by name among those running on the day
// of the time parameter, selects its line and highlights it.
func (api *RestAPI) searchTrainHandler(w http.ResponseWriter, r *http.Request) {
	name, err := utils.ValidateAndSanitizeQuery(r.URL.Query().Get("name"))
	if err != nil || name == "" {
		api.validationErrorResponse(w, r, map[string][]string{"name": {"train name is required"}})
		return
	}

	state, fieldErrors := api.parseState(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	state, trip, err := api.Engine.SearchTrain(r.Context(), state, name)
	switch {
	case errors.Is(err, viewer.ErrTrainNotFound):
		api.notFoundResponse(w, r, "train not found")
		return
	case errors.Is(err, viewer.ErrTrainNotRunning):
		api.notFoundResponse(w, r, "train does not run on this day")
		return
	case err != nil:
		api.serverErrorResponse(w, r, err)
		return
	}

	detail, err := api.Engine.TripDetail(trip.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.SearchResult{
		Trip:  models.NewTripDetail(detail),
		State: state,
	}))
}
