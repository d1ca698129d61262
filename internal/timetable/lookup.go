package timetable

import (
	"math"
	"strings"

	"spacetime.railviz.dev/internal/railway"
)

// Stations returns every station ordered by id.
func (manager *Manager) Stations() []railway.Station {
	return manager.stations
}

// Trips returns every loaded trip ordered by id.
func (manager *Manager) Trips() []*railway.Trip {
	return manager.trips
}

// Rejected returns the trips that were skipped at load time.
func (manager *Manager) Rejected() []Rejection {
	return manager.rejected
}

func (manager *Manager) Station(id int) (railway.Station, bool) {
	i, ok := manager.stationsByID[id]
	if !ok {
		return railway.Station{}, false
	}
	return manager.stations[i], true
}

// StationByName finds a station by its exact name. Names are not unique in
// every feed; the station with the lowest id wins.
func (manager *Manager) StationByName(name string) (railway.Station, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return railway.Station{}, false
	}
	for _, st := range manager.stations {
		if st.Name == name {
			return st, true
		}
	}
	return railway.Station{}, false
}

func (manager *Manager) Trip(id int) (*railway.Trip, bool) {
	trip, ok := manager.tripsByID[id]
	return trip, ok
}

// NearestStation returns the station closest to the coordinate by planar distance.
func (manager *Manager) NearestStation(lat, long float64) (railway.Station, bool) {
	if len(manager.stations) == 0 {
		return railway.Station{}, false
	}

	target := [2]float64{lat, long}
	var (
		nearest railway.Station
		found   bool
	)
	manager.stationIndex.Nearby(
		func(min, max [2]float64, data interface{}, item bool) float64 {
			return boxDistance(target, min, max)
		},
		func(min, max [2]float64, data interface{}, dist float64) bool {
			st, ok := data.(railway.Station)
			if !ok {
				return true
			}
			nearest, found = st, true
			return false
		},
	)
	return nearest, found
}

// boxDistance is the planar distance from p to the closest point of the box.
func boxDistance(p, min, max [2]float64) float64 {
	var sum float64
	for i := 0; i < 2; i++ {
		var d float64
		switch {
		case p[i] < min[i]:
			d = min[i] - p[i]
		case p[i] > max[i]:
			d = p[i] - max[i]
		}
		sum += d * d
	}
	return math.Sqrt(sum)
}
