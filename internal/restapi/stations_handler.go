package restapi

import (
	"net/http"

	"spacetime.railviz.dev/internal/models"
	"spacetime.railviz.dev/internal/projection"
	"spacetime.railviz.dev/internal/railway"
	"spacetime.railviz.dev/internal/utils"
)

func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(models.NewStations(api.Timetable.Stations())))
}

func (api *RestAPI) nearestStationHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lon") == "" {
		api.validationErrorResponse(w, r, map[string][]string{
			"location": {"lat and lon are required"},
		})
		return
	}

	lat, fieldErrors := utils.ParseFloatParam(q, "lat", nil)
	lon, fieldErrors := utils.ParseFloatParam(q, "lon", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	if fieldErrors := utils.ValidateLocationParams(lat, lon); len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	st, ok := api.Timetable.NearestStation(lat, lon)
	if !ok {
		api.notFoundResponse(w, r, "no stations loaded")
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NearestStation{
		Station:  models.NewStation(st),
		Distance:    railway.PlanarDistance(st, railway.Station{Lat: lat, Long: lon}),
		Position:    projection.Default.Project(st.Lat, st.Long),
		InsideFrame: projection.Default.Contains(lat, lon),
	}))
}
