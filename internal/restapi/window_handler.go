package restapi

import (
	"net/http"

	"spacetime.railviz.dev/internal/calendar"
	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/utils"
)

// windowHandler returns the raw three day window: the trips running on the
// day before, the day and the day after.
func (api *RestAPI) windowHandler(w http.ResponseWriter, r *http.Request) {
	raw := utils.ExtractIDFromParams(r, "date")
	date, err := calendar.ParseDate(raw, api.Calendar.Location())
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"date": {err.Error()}})
		return
	}

	window, err := api.Calendar.ResolveWindow(r.Context(), date)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(window))
}

// sceneHandler lays out every trip line of the state's window.
func (api *RestAPI) sceneHandler(w http.ResponseWriter, r *http.Request) {
	state, fieldErrors := api.parseState(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	scene, err := api.Engine.Scene(r.Context(), state)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewScene(scene, state)))
}
