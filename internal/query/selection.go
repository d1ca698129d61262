// Package query selects trips by station role, transfer correlation and name.
package query

import (
	"sort"

	"spacetime.railviz.dev/internal/railway"
)

// Timetable is the read-only view of the loaded trips and stations that
// queries run against.
type Timetable interface {
	Trips() []*railway.Trip
	Trip(id int) (*railway.Trip, bool)
	Station(id int) (railway.Station, bool)
	StationByName(name string) (railway.Station, bool)
}

// Predicate decides whether a trip belongs to a selection.
type Predicate interface {
	Match(trip *railway.Trip) bool
}

// Selection is a set of trip ids.
type Selection map[int]struct{}

func NewSelection(ids ...int) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection) Includes(tripID int) bool {
	_, ok := s[tripID]
	return ok
}

func (s Selection) Match(trip *railway.Trip) bool {
	return s.Includes(trip.ID)
}

// IDs returns the selected trip ids in ascending order.
func (s Selection) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Select collects the trips matching every predicate. Nil predicates are
// skipped, so no predicate at all selects every trip.
func Select(tt Timetable, predicates ...Predicate) Selection {
	out := Selection{}
	for _, trip := range tt.Trips() {
		if All(predicates...).Match(trip) {
			out[trip.ID] = struct{}{}
		}
	}
	return out
}

type all []Predicate

func (a all) Match(trip *railway.Trip) bool {
	for _, p := range a {
		if p != nil && !p.Match(trip) {
			return false
		}
	}
	return true
}

// All chains predicates: a trip must match each of them.
func All(predicates ...Predicate) Predicate {
	return all(predicates)
}
