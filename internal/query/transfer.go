package query

import (
	"errors"
	"strings"

	"spacetime.railviz.dev/internal/railway"
)

var ErrTripNotFound = errors.New("trip not found")

// TransferCorrelation selects the trips that visit at least one location
// visited by the reference trip, the reference trip included. Locations are
// compared by quantized coordinates, not by stop id, so distinct stops at the
// same place correlate.
func TransferCorrelation(tt Timetable, refTripID int) (Selection, error) {
	ref, ok := tt.Trip(refTripID)
	if !ok {
		return nil, ErrTripNotFound
	}

	keys := visitedKeys(tt, ref)
	out := NewSelection(ref.ID)
	for _, trip := range tt.Trips() {
		for _, p := range trip.Journey {
			st, ok := tt.Station(p.StopID)
			if !ok {
				continue
			}
			if _, shared := keys[st.Key()]; shared {
				out[trip.ID] = struct{}{}
				break
			}
		}
	}
	return out, nil
}

func visitedKeys(tt Timetable, trip *railway.Trip) map[railway.CoordKey]struct{} {
	keys := make(map[railway.CoordKey]struct{}, len(trip.Journey))
	for _, p := range trip.Journey {
		if st, ok := tt.Station(p.StopID); ok {
			keys[st.Key()] = struct{}{}
		}
	}
	return keys
}

// FindTripByName finds the first trip, in id order, whose short name matches
// name ignoring spaces and case. accept may further restrict the
// candidates, e.g. to trips running on a given day.
func FindTripByName(tt Timetable, name string, accept func(*railway.Trip) bool) (*railway.Trip, bool) {
	want := strings.ReplaceAll(name, " ", "")
	if want == "" {
		return nil, false
	}
	for _, trip := range tt.Trips() {
		if !strings.EqualFold(trip.CompactName(), want) {
			continue
		}
		if accept != nil && !accept(trip) {
			continue
		}
		return trip, true
	}
	return nil, false
}
