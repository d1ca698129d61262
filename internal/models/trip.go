package models

import (
	"github.com/twpayne/go-polyline"
	"spacetime.railviz.dev/internal/railway"
	"spacetime.railviz.dev/internal/viewer"
)

type Trip struct {
	ID        int              `json:"id"`
	ServiceID int              `json:"serviceId"`
	ShapeID   int              `json:"shapeId"`
	ShortName string           `json:"shortName"`
	Headsign  string           `json:"headsign"`
	RouteName string           `json:"routeName"`
	Direction int              `json:"direction"`
	Category  railway.Category `json:"category"`
	Visits    int              `json:"visits"`
}

func NewTrip(t *railway.Trip) Trip {
	return Trip{
		ID:        t.ID,
		ServiceID: t.ServiceID,
		ShapeID:   t.ShapeID,
		ShortName: t.ShortName,
		Headsign:  t.Headsign,
		RouteName: t.RouteName,
		Direction: t.Direction,
		Category:  t.Category,
		Visits:    len(t.Journey),
	}
}

func NewTrips(trips []*railway.Trip) []Trip {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = NewTrip(t)
	}
	return out
}

// Visit is one row of a trip's stop list. Times are null when they could
// not be reconstructed.
type Visit struct {
	StationID     int      `json:"stationId"`
	Name          string   `json:"name"`
	Arrival       *float64 `json:"arrival"`
	Departure     *float64 `json:"departure"`
	ArrivalText   string   `json:"arrivalText,omitempty"`
	DepartureText string   `json:"departureText,omitempty"`
	DoesStop      bool     `json:"doesStop"`
}

type TripDetail struct {
	Trip
	Number    string   `json:"number,omitempty"`
	Name      string   `json:"name,omitempty"`
	From      Station  `json:"from"`
	To        Station  `json:"to"`
	Departure string   `json:"departure"`
	Arrival   string   `json:"arrival"`
	Stops     []Visit  `json:"stops"`
	Polyline  string   `json:"polyline"`
	Defects   []string `json:"defects,omitempty"`
}

func NewTripDetail(d viewer.Detail) TripDetail {
	out := TripDetail{
		Trip:      NewTrip(d.Trip),
		Number:    d.Number,
		Name:      d.Name,
		From:      NewStation(d.From),
		To:        NewStation(d.To),
		Departure: d.Departure,
		Arrival:   d.Arrival,
	}

	coords := make([][]float64, 0, len(d.Stops))
	for _, s := range d.Stops {
		out.Stops = append(out.Stops, Visit{
			StationID:     s.Station.ID,
			Name:          s.Station.Name,
			Arrival:       visitTime(s.Visit.Arrival),
			Departure:     visitTime(s.Visit.Departure),
			ArrivalText:   s.Arrival,
			DepartureText: s.Departure,
			DoesStop:      s.Visit.DoesStop,
		})
		coords = append(coords, []float64{s.Station.Lat, s.Station.Long})
	}
	out.Polyline = string(polyline.EncodeCoords(coords))

	for _, defect := range d.Trip.Journey.Defects() {
		out.Defects = append(out.Defects, defect.String())
	}
	return out
}

func visitTime(v float64) *float64 {
	if v == railway.UnknownTime {
		return nil
	}
	return Finite(v)
}
