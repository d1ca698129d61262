package timetable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"
	"github.com/tidwall/rtree"
	"spacetime.railviz.dev/gtfsdb"
	"spacetime.railviz.dev/internal/logging"
	"spacetime.railviz.dev/internal/railway"
)

// Reasons a trip is left out of the timetable.
const (
	ReasonFilteredID     = "filtered_id"
	ReasonThroughCoach   = "through_coach"
	ReasonEmpty          = "empty"
	ReasonUnanchored     = "unanchored"
	ReasonUnknownStation = "unknown_station"
)

// Rejection records a trip that was skipped at load time.
type Rejection struct {
	TripID    int    `json:"tripId"`
	ShortName string `json:"shortName"`
	Reason    string `json:"reason"`
	Detail    string `json:"detail,omitempty"`
}

type reconstructionJob struct {
	trip    *railway.Trip
	visits  []railway.PlaceTime
	journey railway.Journey
	err     error
}

// Load reads stations and trips from the database and reconstructs every
// journey. Trips that cannot be reconstructed are recorded in Rejected and
// never abort the load.
func (manager *Manager) Load(ctx context.Context) error {
	started := time.Now()

	q := manager.GtfsDB.Queries
	stops, err := q.ListStops(ctx)
	if err != nil {
		return fmt.Errorf("error loading stations: %w", err)
	}
	rows, err := q.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("error loading trips: %w", err)
	}
	shapes, err := q.ListShapes(ctx)
	if err != nil {
		return fmt.Errorf("error loading shapes: %w", err)
	}
	stopTimes, err := q.ListStopTimes(ctx)
	if err != nil {
		return fmt.Errorf("error loading stop times: %w", err)
	}

	manager.setStations(stops)

	pointsByShape := make(map[int][]railway.CoordKey)
	for _, pt := range shapes {
		pointsByShape[pt.ShapeID] = append(pointsByShape[pt.ShapeID], railway.KeyOf(pt.Lat, pt.Lon))
	}

	timesByTrip := make(map[int][]gtfsdb.StopTime)
	for _, st := range stopTimes {
		timesByTrip[st.TripID] = append(timesByTrip[st.TripID], st)
	}

	stationAt := manager.stationsByKey()

	var (
		jobs     []reconstructionJob
		rejected []Rejection
	)
	for _, row := range rows {
		trip := railway.NewTrip(row.ID, row.ServiceID, row.ShapeID, row.Headsign, row.ShortName, row.RouteName, row.DirectionID)

		if trip.ID <= 0 || (manager.config.MaxTripID > 0 && trip.ID >= manager.config.MaxTripID) {
			rejected = append(rejected, Rejection{TripID: trip.ID, ShortName: trip.ShortName, Reason: ReasonFilteredID})
			continue
		}
		if trip.IsThroughCoach() && !manager.config.KeepThroughCoaches {
			rejected = append(rejected, Rejection{TripID: trip.ID, ShortName: trip.ShortName, Reason: ReasonThroughCoach})
			continue
		}

		jobs = append(jobs, reconstructionJob{
			trip:   trip,
			visits: buildVisits(pointsByShape[trip.ShapeID], timesByTrip[trip.ID], stationAt),
		})
	}

	iter.ForEach(jobs, func(job *reconstructionJob) {
		job.journey, job.err = railway.Reconstruct(job.visits, manager.Station)
	})

	trips := make([]*railway.Trip, 0, len(jobs))
	for _, job := range jobs {
		if job.err != nil {
			r := Rejection{TripID: job.trip.ID, ShortName: job.trip.ShortName, Reason: rejectionReason(job.err), Detail: job.err.Error()}
			logging.LogError(manager.logger, "trip rejected", job.err,
				slog.Int("trip_id", r.TripID),
				slog.String("short_name", r.ShortName),
				slog.String("reason", r.Reason))
			rejected = append(rejected, r)
			continue
		}

		job.trip.Journey = job.journey
		if defects := job.journey.Defects(); len(defects) > 0 {
			for _, d := range defects {
				manager.metrics.JourneyDefects.WithLabelValues(d.Kind.String()).Inc()
			}
			manager.logger.Warn("journey has defects",
				slog.Int("trip_id", job.trip.ID),
				slog.String("short_name", job.trip.ShortName),
				slog.Any("defects", defects))
		}
		trips = append(trips, job.trip)
	}

	manager.trips = trips
	manager.tripsByID = make(map[int]*railway.Trip, len(trips))
	for _, trip := range trips {
		manager.tripsByID[trip.ID] = trip
	}
	manager.rejected = rejected
	for _, r := range rejected {
		manager.metrics.TripsRejected.WithLabelValues(r.Reason).Inc()
	}

	manager.lastLoaded = time.Now()
	manager.loadDuration = time.Since(started)
	manager.metrics.StationsLoaded.Set(float64(len(manager.stations)))
	manager.metrics.TripsLoaded.Set(float64(len(trips)))
	manager.metrics.LoadDuration.Observe(manager.loadDuration.Seconds())

	logging.LogOperation(manager.logger, "timetable_loaded",
		slog.Int("stations", len(manager.stations)),
		slog.Int("trips", len(trips)),
		slog.Int("rejected", len(rejected)),
		slog.Duration("duration", manager.loadDuration))

	return nil
}

func (manager *Manager) setStations(stops []gtfsdb.Stop) {
	sort.Slice(stops, func(i, j int) bool { return stops[i].ID < stops[j].ID })

	manager.stations = make([]railway.Station, len(stops))
	manager.stationsByID = make(map[int]int, len(stops))
	manager.stationIndex = &rtree.RTree{}

	for i, s := range stops {
		st := railway.Station{ID: s.ID, Name: strings.TrimSpace(s.Name), Lat: s.Lat, Long: s.Lon}
		manager.stations[i] = st
		manager.stationsByID[st.ID] = i

		// For points, min and max are the same [lat, lon]
		manager.stationIndex.Insert(
			[2]float64{st.Lat, st.Long},
			[2]float64{st.Lat, st.Long},
			st,
		)
	}
}

// stationsByKey maps each quantized coordinate to the station with the
// lowest id at that location.
func (manager *Manager) stationsByKey() map[railway.CoordKey]railway.Station {
	byKey := make(map[railway.CoordKey]railway.Station, len(manager.stations))
	manager.ambiguousKeys = 0
	for _, st := range manager.stations {
		if _, taken := byKey[st.Key()]; taken {
			manager.ambiguousKeys++
			continue
		}
		byKey[st.Key()] = st
	}
	if manager.ambiguousKeys > 0 {
		manager.logger.Warn("stations share a location, keeping the lowest id",
			slog.Int("count", manager.ambiguousKeys))
	}
	return byKey
}

// buildVisits lists the stations along a trip's shape. A visit is a
// timetabled stop when the trip has a stop time there; other visits are
// pass-through points with unknown times. Stop times are matched to shape
// visits in sequence order, so a trip calling twice at one station gets
// each call once. Consecutive shape points at the same station are one visit.
// Trips without a shape fall back to their stop times in sequence order.
func buildVisits(points []railway.CoordKey, stopTimes []gtfsdb.StopTime, stationAt map[railway.CoordKey]railway.Station) []railway.PlaceTime {
	var visits []railway.PlaceTime
	if len(points) == 0 {
		for _, st := range stopTimes {
			visits = append(visits, placeTime(st.StopID, st, true))
		}
		return visits
	}

	calls := make(map[int][]gtfsdb.StopTime, len(stopTimes))
	for _, st := range stopTimes {
		calls[st.StopID] = append(calls[st.StopID], st)
	}

	for _, key := range points {
		station, ok := stationAt[key]
		if !ok {
			continue
		}
		if n := len(visits); n > 0 && visits[n-1].StopID == station.ID {
			continue
		}

		queue := calls[station.ID]
		if len(queue) == 0 {
			visits = append(visits, placeTime(station.ID, gtfsdb.StopTime{}, false))
			continue
		}
		calls[station.ID] = queue[1:]
		visits = append(visits, placeTime(station.ID, queue[0], true))
	}
	return visits
}

func placeTime(stopID int, st gtfsdb.StopTime, stops bool) railway.PlaceTime {
	if !stops {
		return railway.PlaceTime{StopID: stopID, Arrival: railway.UnknownTime, Departure: railway.UnknownTime}
	}
	return railway.PlaceTime{
		StopID:    stopID,
		Arrival:   railway.ParseClock(st.ArrivalTime),
		Departure: railway.ParseClock(st.DepartureTime),
		DoesStop:  true,
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, railway.ErrEmptyJourney):
		return ReasonEmpty
	case errors.Is(err, railway.ErrUnanchoredJourney):
		return ReasonUnanchored
	case errors.Is(err, railway.ErrUnknownStation):
		return ReasonUnknownStation
	default:
		return "other"
	}
}
