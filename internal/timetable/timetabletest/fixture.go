// Package timetabletest provides a small loaded timetable for tests.
package timetabletest

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/require"
	"spacetime.railviz.dev/gtfsdb"
	"spacetime.railviz.dev/internal/appconf"
	"spacetime.railviz.dev/internal/metrics"
	"spacetime.railviz.dev/internal/timetable"
)

// Station ids of the fixture.
const (
	Alpha   = 1
	Beta    = 2
	Gamma   = 3
	Delta   = 4
	Epsilon = 5
)

// Trip ids of the fixture.
const (
	// Alpha 08:00 -> Beta 08:10/08:11, fully timetabled.
	TimedTrip = 1
	// Gamma 09:00 -> (Delta) -> Epsilon 09:30, Delta is passed halfway.
	GapTrip = 2
	// Alpha 10:00 -> (Beta) -> Gamma 10:20, passes Beta without stopping.
	SharingTrip = 3

	// Trips that never make it into the timetable.
	ThroughCoachTrip = 7
	UnanchoredTrip   = 8
	FilteredTrip     = 20000001
)

// GapTripDeltaTime is the interpolated passing time at Delta: 09:15:00.
const GapTripDeltaTime = 9*3600 + 15*60

// Service days of the fixture. TimedTrip runs on all three, GapTrip on Day
// only and SharingTrip on DayAfter only.
const (
	DayBefore = 20250309
	Day       = 20250310
	DayAfter  = 20250311
)

// Feed is the fixture feed: five stations along a railway, three valid trips
// and three trips that are rejected or filtered.
func Feed() *gtfsdb.Feed {
	return &gtfsdb.Feed{
		Routes: []gtfsdb.Route{
			{ID: "R1", LongName: "Alpha - Gamma", Type: 2},
			{ID: "R2", LongName: "Gamma - Epsilon", Type: 2},
		},
		Stops: []gtfsdb.Stop{
			{ID: Alpha, Name: "Alpha", Lat: 48.0, Lon: 17.0},
			{ID: Beta, Name: "Beta", Lat: 48.0, Lon: 17.5},
			{ID: Gamma, Name: "Gamma", Lat: 48.0, Lon: 18.0},
			{ID: Delta, Name: "Delta", Lat: 48.5, Lon: 18.0},
			{ID: Epsilon, Name: "Epsilon", Lat: 49.0, Lon: 18.0},
		},
		Trips: []gtfsdb.Trip{
			{ID: TimedTrip, RouteID: "R1", ServiceID: 1, Headsign: "Beta", ShortName: "Os 1001", ShapeID: 100},
			{ID: GapTrip, RouteID: "R2", ServiceID: 2, Headsign: "Epsilon", ShortName: "R 603", ShapeID: 200},
			{ID: SharingTrip, RouteID: "R1", ServiceID: 3, Headsign: "Gamma", ShortName: "IC 501", ShapeID: 300, DirectionID: 1},
			{ID: ThroughCoachTrip, RouteID: "R1", ServiceID: 1, ShortName: "Os 1001/R 603", ShapeID: 100},
			{ID: UnanchoredTrip, RouteID: "R1", ServiceID: 1, ShortName: "Os 1003", ShapeID: 300},
			{ID: FilteredTrip, RouteID: "R1", ServiceID: 1, ShortName: "Os 9999", ShapeID: 100},
		},
		StopTimes: []gtfsdb.StopTime{
			{TripID: TimedTrip, StopID: Alpha, StopSequence: 1, ArrivalTime: "08:00:00", DepartureTime: "08:00:00"},
			{TripID: TimedTrip, StopID: Beta, StopSequence: 2, ArrivalTime: "08:10:00", DepartureTime: "08:11:00"},

			{TripID: GapTrip, StopID: Gamma, StopSequence: 1, ArrivalTime: "09:00:00", DepartureTime: "09:00:00"},
			{TripID: GapTrip, StopID: Epsilon, StopSequence: 2, ArrivalTime: "09:30:00", DepartureTime: "09:30:00"},

			{TripID: SharingTrip, StopID: Alpha, StopSequence: 1, ArrivalTime: "10:00:00", DepartureTime: "10:00:00"},
			{TripID: SharingTrip, StopID: Gamma, StopSequence: 2, ArrivalTime: "10:20:00", DepartureTime: "10:20:00"},

			{TripID: ThroughCoachTrip, StopID: Alpha, StopSequence: 1, ArrivalTime: "08:00:00", DepartureTime: "08:00:00"},
			{TripID: ThroughCoachTrip, StopID: Beta, StopSequence: 2, ArrivalTime: "08:10:00", DepartureTime: "08:10:00"},

			// first visit on the shape has no stop time
			{TripID: UnanchoredTrip, StopID: Beta, StopSequence: 1, ArrivalTime: "11:10:00", DepartureTime: "11:10:00"},
			{TripID: UnanchoredTrip, StopID: Gamma, StopSequence: 2, ArrivalTime: "11:20:00", DepartureTime: "11:20:00"},

			{TripID: FilteredTrip, StopID: Alpha, StopSequence: 1, ArrivalTime: "12:00:00", DepartureTime: "12:00:00"},
			{TripID: FilteredTrip, StopID: Beta, StopSequence: 2, ArrivalTime: "12:10:00", DepartureTime: "12:10:00"},
		},
		Shapes: []gtfsdb.Shape{
			{ShapeID: 100, Sequence: 1, Lat: 48.0, Lon: 17.0},
			{ShapeID: 100, Sequence: 2, Lat: 48.0, Lon: 17.25}, // open line, no station
			{ShapeID: 100, Sequence: 3, Lat: 48.0, Lon: 17.5},

			{ShapeID: 200, Sequence: 1, Lat: 48.0, Lon: 18.0},
			{ShapeID: 200, Sequence: 2, Lat: 48.5, Lon: 18.0},
			{ShapeID: 200, Sequence: 3, Lat: 49.0, Lon: 18.0},

			{ShapeID: 300, Sequence: 1, Lat: 48.0, Lon: 17.0},
			{ShapeID: 300, Sequence: 2, Lat: 48.0, Lon: 17.5},
			{ShapeID: 300, Sequence: 3, Lat: 48.0, Lon: 18.0},
		},
		CalendarDates: []gtfsdb.CalendarDate{
			{ServiceID: 1, Date: DayBefore, ExceptionType: gtfsdb.ExceptionAdded},
			{ServiceID: 1, Date: Day, ExceptionType: gtfsdb.ExceptionAdded},
			{ServiceID: 1, Date: DayAfter, ExceptionType: gtfsdb.ExceptionAdded},
			{ServiceID: 2, Date: DayBefore, ExceptionType: gtfsdb.ExceptionRemoved},
			{ServiceID: 2, Date: Day, ExceptionType: gtfsdb.ExceptionAdded},
			{ServiceID: 3, Date: DayAfter, ExceptionType: gtfsdb.ExceptionAdded},
		},
	}
}

// Config is the timetable configuration the fixture is loaded with.
func Config() timetable.Config {
	return timetable.Config{
		DBPath:    ":memory:",
		Env:       appconf.Test,
		MaxTripID: appconf.DefaultMaxTripID,
	}
}

// NewManager loads the fixture feed into an in-memory database.
func NewManager(t testing.TB) *timetable.Manager {
	t.Helper()
	return NewManagerFromFeed(t, Feed(), Config())
}

// NewManagerFromFeed loads an arbitrary feed into an in-memory database.
func NewManagerFromFeed(t testing.TB, feed *gtfsdb.Feed, config timetable.Config) *timetable.Manager {
	t.Helper()

	client, err := gtfsdb.NewClient(gtfsdb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.StoreFeed(ctx, feed))

	manager := timetable.NewManager(client, config, metrics.NewCollector(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, manager.Load(ctx))
	t.Cleanup(manager.Shutdown)

	return manager
}

// FeedZip encodes the fixture feed as a GTFS archive.
func FeedZip(t testing.TB) []byte {
	t.Helper()

	feed := Feed()
	tables := map[string]interface{}{
		"routes.txt":         feed.Routes,
		"stops.txt":          feed.Stops,
		"trips.txt":          feed.Trips,
		"stop_times.txt":     feed.StopTimes,
		"shapes.txt":         feed.Shapes,
		"calendar_dates.txt": feed.CalendarDates,
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, rows := range tables {
		content, err := gocsv.MarshalBytes(rows)
		require.NoError(t, err)

		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}
