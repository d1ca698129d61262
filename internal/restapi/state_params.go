package restapi

import (
	"net/http"
	"strconv"
	"time"

	"spacetime.railviz.dev/internal/query"
	"spacetime.railviz.dev/internal/utils"
	"spacetime.railviz.dev/internal/viewer"
)

// parseState reads the view state from query parameters:
//
//	time       epoch millis, YYYY-MM-DD or RFC 3339, default now
//	station    station name, or stationId for an id
//	role       stops|starts|ends|passes
//	line       reference trip id of the line filter
//	highlight  highlighted trip id
//	hidden     comma separated category ids
//
// A line filter takes precedence over a station filter when both are given.
func (api *RestAPI) parseState(r *http.Request) (viewer.State, map[string][]string) {
	q := r.URL.Query()
	fieldErrors := make(map[string][]string)

	date, timeErrors, ok := utils.ParseTimeParameter(q.Get("time"), api.Calendar.Location(), time.Now())
	if !ok {
		return viewer.State{}, timeErrors
	}
	s := viewer.State{Date: date}
	for _, category := range utils.ParseListParam(q, "hidden") {
		s = viewer.SetCategoryVisible(s, category, false)
	}

	role, err := query.ParseRole(q.Get("role"))
	if err != nil {
		fieldErrors["role"] = append(fieldErrors["role"], err.Error())
	}

	if raw := q.Get("stationId"); raw != "" {
		if err := utils.ValidateID(raw); err != nil {
			fieldErrors["stationId"] = append(fieldErrors["stationId"], err.Error())
		} else {
			id, _ := strconv.Atoi(raw)
			s, ok = api.Engine.SelectStationByID(s, id)
			if !ok {
				fieldErrors["stationId"] = append(fieldErrors["stationId"], "unknown station")
			}
		}
	} else if name := utils.SanitizeInput(q.Get("station")); name != "" {
		s, ok = api.Engine.SelectStation(s, name, role)
		if !ok {
			fieldErrors["station"] = append(fieldErrors["station"], "unknown station")
		}
	}
	s.Role = role

	var line, highlight int
	line, fieldErrors = utils.ParseIntParam(q, "line", fieldErrors)
	highlight, fieldErrors = utils.ParseIntParam(q, "highlight", fieldErrors)
	if line > 0 {
		s, err = api.Engine.SelectLine(s, line)
		if err != nil {
			fieldErrors["line"] = append(fieldErrors["line"], err.Error())
		}
	}
	if highlight > 0 {
		s.Highlight = highlight
	}

	if len(fieldErrors) > 0 {
		return viewer.State{}, fieldErrors
	}
	return s, nil
}
