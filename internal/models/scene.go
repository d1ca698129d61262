package models

import (
	"spacetime.railviz.dev/internal/viewer"
)

type TimelinePoint struct {
	StopID int      `json:"stopId"`
	X      float64  `json:"x"`
	Y      *float64 `json:"y"`
	Z      float64  `json:"z"`
	Time   *float64 `json:"time"`
}

type TripLine struct {
	TripID     int             `json:"tripId"`
	Object     string          `json:"object"`
	Offset     int             `json:"offset"`
	Emphasized bool            `json:"emphasized"`
	CategoryID string          `json:"category"`
	Color      string          `json:"color"`
	Points     []TimelinePoint `json:"points"`
}

type Scene struct {
	Date     int             `json:"date"`
	Cursor   float64         `json:"cursor"`
	Stations []StationMarker `json:"stations"`
	Selected *StationMarker  `json:"selected,omitempty"`
	Lines    []TripLine      `json:"lines"`
	State    viewer.State    `json:"state"`
}

func NewScene(s viewer.Scene, state viewer.State) Scene {
	out := Scene{
		Date:     s.Date,
		Cursor:   s.Cursor,
		Stations: make([]StationMarker, len(s.Stations)),
		Lines:    make([]TripLine, len(s.Lines)),
		State:    state,
	}
	for i, m := range s.Stations {
		out.Stations[i] = NewStationMarker(m)
	}
	if s.Selected != nil {
		m := NewStationMarker(*s.Selected)
		out.Selected = &m
	}
	for i, l := range s.Lines {
		line := TripLine{
			TripID:     l.TripID,
			Object:     l.Object,
			Offset:     l.Offset,
			Emphasized: l.Emphasized,
			CategoryID: l.Category.ID,
			Color:      l.Category.Color,
			Points:     make([]TimelinePoint, len(l.Points)),
		}
		for j, p := range l.Points {
			line.Points[j] = TimelinePoint{StopID: p.StopID, X: p.X, Y: Finite(p.Y), Z: p.Z, Time: Finite(p.Time)}
		}
		out.Lines[i] = line
	}
	return out
}
