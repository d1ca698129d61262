package railway

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyJourney      = errors.New("journey has no visits")
	ErrUnanchoredJourney = errors.New("journey does not start and end at a timed visit")
	ErrUnknownStation    = errors.New("visit references an unknown station")
)

// Locator resolves a stop id to its station.
type Locator func(stopID int) (Station, bool)

// Reconstruct fills in the times of pass-through visits by distributing the
// time between the surrounding timed visits in proportion to planar distance.
//
// A visit with only one of arrival or departure known uses it for both.
// The first and last visits must be timed. A pass-through visit sitting on
// either timed visit of its run, or inside a run of zero length, cannot be
// placed and gets NaN, which Defects reports. Pass-through visits sharing a
// location with each other get the same time.
// The input slice is not modified.
func Reconstruct(visits []PlaceTime, locate Locator) (Journey, error) {
	if len(visits) == 0 {
		return nil, ErrEmptyJourney
	}

	stations := make([]Station, len(visits))
	journey := make(Journey, len(visits))
	for i, v := range visits {
		st, ok := locate(v.StopID)
		if !ok {
			return nil, fmt.Errorf("%w: stop %d at visit %d", ErrUnknownStation, v.StopID, i)
		}
		stations[i] = st

		if v.Arrival == UnknownTime {
			v.Arrival = v.Departure
		}
		if v.Departure == UnknownTime {
			v.Departure = v.Arrival
		}
		journey[i] = v
	}

	last := len(journey) - 1
	if !journey[0].Known() {
		return nil, fmt.Errorf("%w: first visit (stop %d) has no time", ErrUnanchoredJourney, journey[0].StopID)
	}
	if !journey[last].Known() {
		return nil, fmt.Errorf("%w: last visit (stop %d) has no time", ErrUnanchoredJourney, journey[last].StopID)
	}

	lastDeparture := journey[0].Departure
	pending := 0
	runDistance := 0.0

	for i := 1; i < len(journey); i++ {
		runDistance += PlanarDistance(stations[i-1], stations[i])

		if !journey[i].Known() {
			pending++
			continue
		}

		if pending > 0 {
			anchor := stations[i-pending-1]
			unit := (journey[i].Arrival - lastDeparture) / runDistance
			covered := 0.0
			for k := i - pending; k < i; k++ {
				covered += PlanarDistance(stations[k-1], stations[k])

				t := lastDeparture + unit*covered
				if runDistance == 0 || coincident(stations[k], anchor) || coincident(stations[k], stations[i]) {
					t = math.NaN()
				}
				journey[k].Arrival = t
				journey[k].Departure = t
			}
		}

		lastDeparture = journey[i].Departure
		pending = 0
		runDistance = 0
	}

	return journey, nil
}

func coincident(a, b Station) bool {
	return PlanarDistance(a, b) == 0
}
