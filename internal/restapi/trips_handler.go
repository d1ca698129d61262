package restapi

import (
	"errors"
	"net/http"

	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/query"
	"spacetime.railviz.dev/internal/railway"
	"spacetime.railviz.dev/internal/utils"
)

// tripsHandler lists the loaded trips, optionally limited to one category.
func (api *RestAPI) tripsHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	trips := api.Timetable.Trips()
	if category != "" {
		var filtered []*railway.Trip
		for _, trip := range trips {
			if trip.Category.ID == category {
				filtered = append(filtered, trip)
			}
		}
		trips = filtered
	}

	api.sendResponse(w, r, models.NewListResponse(models.NewTrips(trips)))
}

func (api *RestAPI) tripDetailHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntIDFromParams(r, "id")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	detail, err := api.Engine.TripDetail(id)
	if errors.Is(err, query.ErrTripNotFound) {
		api.notFoundResponse(w, r, "trip not found")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewTripDetail(detail)))
}
