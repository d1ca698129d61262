package restapi

import (
	"net/http"

	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/timetable"
)

type statisticsEntry struct {
	timetable.Statistics
	Rejected []timetable.Rejection `json:"rejectedTrips"`
}

func (api *RestAPI) statisticsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(statisticsEntry{
		Statistics: api.Timetable.Statistics(),
		Rejected:   api.Timetable.Rejected(),
	}))
}
