package restapi

import (
	"errors"
	"net/http"

	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/query"
	"spacetime.railviz.dev/internal/utils"
	"spacetime.railviz.dev/internal/viewer"
)

// stationFilterHandler selects the trips that have the given role at a
// station, looked up by name.
func (api *RestAPI) stationFilterHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	name, err := utils.ValidateAndSanitizeQuery(q.Get("name"))
	if err != nil || name == "" {
		api.validationErrorResponse(w, r, map[string][]string{"name": {"station name is required"}})
		return
	}
	role, err := query.ParseRole(q.Get("role"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"role": {err.Error()}})
		return
	}

	state, fieldErrors := api.parseState(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	sel, st, found := query.SelectByStationName(api.Timetable, name, role)
	if !found {
		api.notFoundResponse(w, r, "station not found")
		return
	}
	state.Role = role
	state, _ = api.Engine.SelectStationByID(state, st.ID)

	station := models.NewStation(st)
	api.sendResponse(w, r, models.NewEntryResponse(models.Selection{
		Station: &station,
		Role:    role.String(),
		TripIDs: sel.IDs(),
		State:   state,
	}))
}

// clearFilterHandler drops the station and line filters and the highlight.
func (api *RestAPI) clearFilterHandler(w http.ResponseWriter, r *http.Request) {
	state, fieldErrors := api.parseState(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	state = viewer.Deselect(state)
	api.sendResponse(w, r, models.NewEntryResponse(models.Selection{
		TripIDs: api.selectedTripIDs(state),
		State:   state,
	}))
}

// lineFilterHandler selects the trips sharing a station location with the
// reference trip and highlights it.
func (api *RestAPI) lineFilterHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntIDFromParams(r, "id")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	state, fieldErrors := api.parseState(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	state, err = api.Engine.SelectLine(state, id)
	if errors.Is(err, query.ErrTripNotFound) {
		api.notFoundResponse(w, r, "trip not found")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.Selection{
		Line:    id,
		TripIDs: api.selectedTripIDs(state),
		State:   state,
	}))
}

// selectedTripIDs lists the loaded trips passing the state's filter,
// regardless of the day they run on.
func (api *RestAPI) selectedTripIDs(state viewer.State) []int {
	return query.Select(api.Timetable, api.Engine.Selection(state)).IDs()
}
