package models

import (
	"spacetime.railviz.dev/internal/projection"
	"spacetime.railviz.dev/internal/railway"
	"spacetime.railviz.dev/internal/viewer"
)

type Station struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewStation(st railway.Station) Station {
	return Station{ID: st.ID, Name: st.Name, Lat: st.Lat, Lon: st.Long}
}

func NewStations(stations []railway.Station) []Station {
	out := make([]Station, len(stations))
	for i, st := range stations {
		out[i] = NewStation(st)
	}
	return out
}

// StationMarker is a station with its scene object name and map position.
type StationMarker struct {
	Station
	Object string  `json:"object"`
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
}

func NewStationMarker(m viewer.StationMarker) StationMarker {
	return StationMarker{Station: NewStation(m.Station), Object: m.Object, X: m.X, Z: m.Z}
}

// NearestStation is a station found near a coordinate.
type NearestStation struct {
	Station
	Distance    float64          `json:"distance"` // planar, degrees
	Position    projection.Point `json:"position"`
	InsideFrame bool             `json:"insideFrame"` // the queried coordinate lies on the map
}
