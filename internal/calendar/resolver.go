// Package calendar decides which trips run around a given day.
package calendar

import (
	"context"
	"fmt"
	"time"

	"spacetime.railviz.dev/internal/metrics"
	"spacetime.railviz.dev/internal/railway"
)

// TripSource answers service day questions from the tabular backend.
// Only added service exceptions count as service days.
type TripSource interface {
	ListTripIDsRunningOn(ctx context.Context, date int) ([]int, error)
	TripRunsOn(ctx context.Context, tripID, date int) (bool, error)
}

// Filter limits placements to a selection of trips.
type Filter interface {
	Includes(tripID int) bool
}

// Bucket holds the trips running on one day and the offset that places
// that day on the continuous timeline.
type Bucket struct {
	Date    int   `json:"date"`   // YYYYMMDD
	Offset  int   `json:"offset"` // seconds added to visit times
	TripIDs []int `json:"tripIds"`
}

// Window is the day before, the day itself and the day after, in that order.
type Window struct {
	Date    int       `json:"date"`
	Buckets [3]Bucket `json:"buckets"`
}

// Placement is one rendering of a trip on the timeline. The same trip may be
// placed once per bucket it runs in.
type Placement struct {
	TripID     int  `json:"tripId"`
	Offset     int  `json:"offset"`
	Emphasized bool `json:"emphasized"`
}

type Resolver struct {
	source   TripSource
	location *time.Location
	metrics  *metrics.Collector
}

func NewResolver(source TripSource, location *time.Location, collector *metrics.Collector) *Resolver {
	if location == nil {
		location = time.UTC
	}
	return &Resolver{source: source, location: location, metrics: collector}
}

func (r *Resolver) Location() *time.Location {
	return r.location
}

// ResolveWindow looks up the trips running on date-1, date and date+1.
// A day without service is an empty bucket, not an error.
func (r *Resolver) ResolveWindow(ctx context.Context, date time.Time) (Window, error) {
	started := time.Now()
	day := Midnight(date, r.location)

	w := Window{Date: DateKey(day)}
	for i, shift := range []int{-1, 0, 1} {
		d := day.AddDate(0, 0, shift)
		ids, err := r.source.ListTripIDsRunningOn(ctx, DateKey(d))
		if err != nil {
			return Window{}, fmt.Errorf("error resolving trips for %d: %w", DateKey(d), err)
		}
		w.Buckets[i] = Bucket{
			Date:    DateKey(d),
			Offset:  shift * railway.SecondsPerDay,
			TripIDs: ids,
		}
	}

	if r.metrics != nil {
		r.metrics.WindowDuration.Observe(time.Since(started).Seconds())
	}
	return w, nil
}

// RunsOn reports whether the trip has service on the given day.
func (r *Resolver) RunsOn(ctx context.Context, tripID int, date time.Time) (bool, error) {
	return r.source.TripRunsOn(ctx, tripID, DateKey(Midnight(date, r.location)))
}

// Placements lists every bucket membership that passes filter, bucket by
// bucket. Trips running on several days are placed once per day. When
// highlight is a positive trip id, every normal placement of that trip is
// followed by an emphasized one with the same offset. A nil filter lets
// every trip through.
func (w Window) Placements(filter Filter, highlight int) []Placement {
	var out []Placement
	for _, b := range w.Buckets {
		for _, id := range b.TripIDs {
			if filter != nil && !filter.Includes(id) {
				continue
			}
			out = append(out, Placement{TripID: id, Offset: b.Offset})
			if highlight > 0 && id == highlight {
				out = append(out, Placement{TripID: id, Offset: b.Offset, Emphasized: true})
			}
		}
	}
	return out
}

// Contains reports whether the trip runs on any day of the window.
func (w Window) Contains(tripID int) bool {
	for _, b := range w.Buckets {
		for _, id := range b.TripIDs {
			if id == tripID {
				return true
			}
		}
	}
	return false
}
