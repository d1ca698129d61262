package viewer

import (
	"strings"

	"spacetime.railviz.dev/internal/query"
	"spacetime.railviz.dev/internal/railway"
)

// Detail describes a trip for the info panel.
type Detail struct {
	Trip      *railway.Trip
	Number    string // second word of the short name
	Name      string // words after the number, the train's own name
	From      railway.Station
	To        railway.Station
	Departure string
	Arrival   string
	Stops     []DetailStop
}

// DetailStop is one row of the stop list. Pass-through rows carry no times.
type DetailStop struct {
	Station   railway.Station
	Visit     railway.PlaceTime
	Arrival   string
	Departure string
}

// TripDetail describes a loaded trip.
func (e *Engine) TripDetail(tripID int) (Detail, error) {
	trip, ok := e.timetable.Trip(tripID)
	if !ok {
		return Detail{}, query.ErrTripNotFound
	}

	d := Detail{Trip: trip}
	words := strings.Fields(trip.ShortName)
	if len(words) > 1 {
		d.Number = words[1]
	}
	if len(words) > 2 {
		d.Name = strings.Join(words[2:], " ")
	}

	if first, ok := trip.Journey.First(); ok {
		d.From, _ = e.timetable.Station(first.StopID)
		d.Departure = railway.FormatClock(first.Departure)
	}
	if last, ok := trip.Journey.Last(); ok {
		d.To, _ = e.timetable.Station(last.StopID)
		d.Arrival = railway.FormatClock(last.Arrival)
	}

	for _, visit := range trip.Journey {
		st, _ := e.timetable.Station(visit.StopID)
		row := DetailStop{Station: st, Visit: visit}
		if visit.DoesStop {
			row.Arrival = railway.FormatClock(visit.Arrival)
			row.Departure = railway.FormatClock(visit.Departure)
		}
		d.Stops = append(d.Stops, row)
	}
	return d, nil
}
