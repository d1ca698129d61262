package webui

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"spacetime.railviz.dev/internal/calendar"
	"spacetime.railviz.dev/internal/railway"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

type tripDefects struct {
	TripID    int
	ShortName string
	Defects   []railway.Defect
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")
	manager := webUI.Timetable

	var data interface{}
	var title string

	switch dataType {
	case "statistics":
		data = manager.Statistics()
		title = "Timetable - Statistics"
	case "stations":
		data = manager.Stations()
		title = "Timetable - Stations"
	case "trips":
		data = manager.Trips()
		title = "Timetable - Trips"
	case "rejected":
		data = manager.Rejected()
		title = "Timetable - Rejected Trips"
	case "defects":
		var defects []tripDefects
		for _, trip := range manager.Trips() {
			if d := trip.Journey.Defects(); len(d) > 0 {
				defects = append(defects, tripDefects{TripID: trip.ID, ShortName: trip.ShortName, Defects: d})
			}
		}
		data = defects
		title = "Timetable - Journey Defects"
	case "routes":
		routes, err := manager.Queries().ListRoutes(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = routes
		title = "Timetable - Routes"
	case "tables":
		counts, err := manager.GtfsDB.TableCounts()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = counts
		title = "Database - Table Counts"
	case "categories":
		data = railway.Categories()
		title = "Train Categories"
	case "window":
		date := time.Now()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := calendar.ParseDate(raw, webUI.Calendar.Location())
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			date = parsed
		}
		window, err := webUI.Calendar.ResolveWindow(r.Context(), date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = window
		title = "Calendar - Window"
	default:
		data = map[string]string{
			"error": "Please use one of the following: statistics, stations, trips, rejected, defects, routes, tables, categories, window.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
