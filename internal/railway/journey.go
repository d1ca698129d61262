package railway

import (
	"fmt"
	"math"
)

// PlaceTime is one visit of a trip at a station, in seconds since local
// midnight. DoesStop is false for geometry-only pass-through points.
type PlaceTime struct {
	StopID    int     `json:"stopId"`
	Arrival   float64 `json:"arrival"`
	Departure float64 `json:"departure"`
	DoesStop  bool    `json:"doesStop"`
}

// Known reports whether the visit has a timetabled or reconstructed arrival.
func (p PlaceTime) Known() bool {
	return p.Arrival != UnknownTime
}

// Journey is the shape ordered list of visits of a trip.
type Journey []PlaceTime

func (j Journey) First() (PlaceTime, bool) {
	if len(j) == 0 {
		return PlaceTime{}, false
	}
	return j[0], true
}

func (j Journey) Last() (PlaceTime, bool) {
	if len(j) == 0 {
		return PlaceTime{}, false
	}
	return j[len(j)-1], true
}

// Passes reports whether any visit is at stopID.
func (j Journey) Passes(stopID int) bool {
	for _, p := range j {
		if p.StopID == stopID {
			return true
		}
	}
	return false
}

// CallsAt reports whether the trip has a timetabled stop at stopID.
func (j Journey) CallsAt(stopID int) bool {
	for _, p := range j {
		if p.StopID == stopID && p.DoesStop {
			return true
		}
	}
	return false
}

type DefectKind int

const (
	DefectUnknownTime DefectKind = iota
	DefectNonFinite
	DefectArrivalAfterDeparture
	DefectDecreasing
)

func (k DefectKind) String() string {
	switch k {
	case DefectUnknownTime:
		return "unknown_time"
	case DefectNonFinite:
		return "non_finite_time"
	case DefectArrivalAfterDeparture:
		return "arrival_after_departure"
	case DefectDecreasing:
		return "decreasing_time"
	default:
		return fmt.Sprintf("defect(%d)", int(k))
	}
}

// Defect is a data quality problem at one visit of a journey.
type Defect struct {
	Index  int        `json:"index"`
	StopID int        `json:"stopId"`
	Kind   DefectKind `json:"kind"`
}

func (d Defect) String() string {
	return fmt.Sprintf("%s at visit %d (stop %d)", d.Kind, d.Index, d.StopID)
}

// Defects checks the journey invariants: no unknown or non-finite times,
// arrival not after departure, and times not decreasing along the journey.
// A decrease across midnight shows up as DefectDecreasing too.
func (j Journey) Defects() []Defect {
	var defects []Defect
	add := func(i int, kind DefectKind) {
		defects = append(defects, Defect{Index: i, StopID: j[i].StopID, Kind: kind})
	}

	prev := math.NaN()
	for i, p := range j {
		if p.Arrival == UnknownTime || p.Departure == UnknownTime {
			add(i, DefectUnknownTime)
			continue
		}
		if !isFinite(p.Arrival) || !isFinite(p.Departure) {
			add(i, DefectNonFinite)
			continue
		}
		if p.Arrival > p.Departure {
			add(i, DefectArrivalAfterDeparture)
		}
		if !math.IsNaN(prev) && p.Arrival < prev {
			add(i, DefectDecreasing)
		}
		prev = p.Departure
	}
	return defects
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
