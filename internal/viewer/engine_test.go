package viewer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"spacetime.railviz.dev/internal/calendar"
	"spacetime.railviz.dev/internal/hit"
	"spacetime.railviz.dev/internal/projection"
	"spacetime.railviz.dev/internal/query"
	"spacetime.railviz.dev/internal/railway"
	"spacetime.railviz.dev/internal/timetable"
	tt "spacetime.railviz.dev/internal/timetable/timetabletest"
	"spacetime.railviz.dev/internal/viewer"
)

func newEngine(t *testing.T, manager *timetable.Manager) *viewer.Engine {
	t.Helper()
	cal := calendar.NewResolver(manager.Queries(), time.UTC, nil)
	return viewer.NewEngine(manager, cal, hit.NewResolver(nil), projection.Default, nil)
}

func at(key int, hour, minute int) time.Time {
	return time.Date(key/10000, time.Month(key/100%100), key%100, hour, minute, 0, 0, time.UTC)
}

type lineKey struct {
	trip       int
	offset     int
	emphasized bool
}

func lineKeys(scene viewer.Scene) []lineKey {
	var keys []lineKey
	for _, l := range scene.Lines {
		keys = append(keys, lineKey{l.TripID, l.Offset, l.Emphasized})
	}
	return keys
}

func TestSceneWithoutFilter(t *testing.T) {
	e := newEngine(t, tt.NewManager(t))

	scene, err := e.Scene(context.Background(), viewer.State{Date: at(tt.Day, 8, 5)})
	require.NoError(t, err)

	assert.Equal(t, tt.Day, scene.Date)
	assert.Equal(t, float64(8*3600+5*60), scene.Cursor)
	assert.Len(t, scene.Stations, 5)
	assert.Equal(t, "STATION 1", scene.Stations[0].Object)
	assert.Nil(t, scene.Selected)

	assert.Equal(t, []lineKey{
		{tt.TimedTrip, -86400, false},
		{tt.TimedTrip, 0, false},
		{tt.GapTrip, 0, false},
		{tt.TimedTrip, 86400, false},
		{tt.SharingTrip, 86400, false},
	}, lineKeys(scene))
	assert.Equal(t, "TRAIN-1", scene.Lines[0].Object)
	assert.Equal(t, "TRAIN01", scene.Lines[1].Object)
	assert.Equal(t, "TRAIN+3", scene.Lines[4].Object)
}

func TestSceneTimelinePoints(t *testing.T) {
	e := newEngine(t, tt.NewManager(t))

	scene, err := e.Scene(context.Background(), viewer.State{Date: at(tt.Day, 0, 0)})
	require.NoError(t, err)

	yesterday := scene.Lines[0]
	require.Equal(t, tt.TimedTrip, yesterday.TripID)
	require.Len(t, yesterday.Points, 4)
	assert.Equal(t, float64(8*3600-86400), yesterday.Points[0].Time)
	assert.Equal(t, float64(8*3600+11*60-86400), yesterday.Points[3].Time)
	assert.InDelta(t, (8*3600-86400)*viewer.TimeScale, yesterday.Points[0].Y, 1e-9)

	alpha := projection.Default.Project(48.0, 17.0)
	assert.Equal(t, alpha, yesterday.Points[0].Point)

	gap := scene.Lines[2]
	require.Equal(t, tt.GapTrip, gap.TripID)
	assert.Equal(t, float64(tt.GapTripDeltaTime), gap.Points[2].Time)
	assert.Equal(t, tt.Delta, gap.Points[2].StopID)
}

func TestSceneMidnightFix(t *testing.T) {
	feed := tt.Feed()
	for i := range feed.StopTimes {
		st := &feed.StopTimes[i]
		if st.TripID != tt.TimedTrip {
			continue
		}
		if st.StopID == tt.Alpha {
			st.ArrivalTime, st.DepartureTime = "23:50:00", "23:50:00"
		} else {
			st.ArrivalTime, st.DepartureTime = "00:10:00", "00:11:00"
		}
	}
	e := newEngine(t, tt.NewManagerFromFeed(t, feed, tt.Config()))

	scene, err := e.Scene(context.Background(), viewer.State{Date: at(tt.Day, 12, 0)})
	require.NoError(t, err)

	var today viewer.TripLine
	for _, l := range scene.Lines {
		if l.TripID == tt.TimedTrip && l.Offset == 0 {
			today = l
		}
	}
	require.Len(t, today.Points, 4)

	var times []float64
	for _, p := range today.Points {
		times = append(times, p.Time)
	}
	assert.Equal(t, []float64{85800, 85800, 86400 + 600, 86400 + 660}, times)
}

func TestSceneFilters(t *testing.T) {
	manager := tt.NewManager(t)
	e := newEngine(t, manager)
	ctx := context.Background()
	base := viewer.State{Date: at(tt.Day, 8, 0)}

	t.Run("station filter", func(t *testing.T) {
		s, found := e.SelectStation(base, "Gamma", query.OriginatesAt)
		require.True(t, found)

		scene, err := e.Scene(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, []lineKey{{tt.GapTrip, 0, false}}, lineKeys(scene))
		require.NotNil(t, scene.Selected)
		assert.Equal(t, tt.Gamma, scene.Selected.ID)
	})

	t.Run("unknown station keeps the state", func(t *testing.T) {
		s, found := e.SelectStation(base, "Omega", query.CallsAt)
		assert.False(t, found)
		assert.Equal(t, base, s)
	})

	t.Run("line filter replaces station filter", func(t *testing.T) {
		s, _ := e.SelectStation(base, "Gamma", query.OriginatesAt)
		s, err := e.SelectLine(s, tt.TimedTrip)
		require.NoError(t, err)
		assert.Nil(t, s.Station)

		scene, err := e.Scene(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, []lineKey{
			{tt.TimedTrip, -86400, false},
			{tt.TimedTrip, -86400, true},
			{tt.TimedTrip, 0, false},
			{tt.TimedTrip, 0, true},
			{tt.TimedTrip, 86400, false},
			{tt.TimedTrip, 86400, true},
			{tt.SharingTrip, 86400, false},
		}, lineKeys(scene))
	})

	t.Run("station filter replaces line filter", func(t *testing.T) {
		s, err := e.SelectLine(base, tt.TimedTrip)
		require.NoError(t, err)
		s, found := e.SelectStation(s, "Beta", query.PassesThrough)
		require.True(t, found)
		assert.Zero(t, s.Line)
	})

	t.Run("hidden category", func(t *testing.T) {
		s := viewer.SetCategoryVisible(base, "os", false)
		scene, err := e.Scene(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, []lineKey{{tt.GapTrip, 0, false}, {tt.SharingTrip, 86400, false}}, lineKeys(scene))

		s = viewer.SetCategoryVisible(s, "os", true)
		assert.Empty(t, s.Hidden)
	})

	t.Run("deselect", func(t *testing.T) {
		s, err := e.SelectLine(base, tt.GapTrip)
		require.NoError(t, err)
		s = viewer.Deselect(s)
		assert.Nil(t, e.Selection(s))
		assert.Zero(t, s.Highlight)
	})
}

func TestSearchTrain(t *testing.T) {
	e := newEngine(t, tt.NewManager(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		train   string
		day     int
		wantErr error
	}{
		{"runs that day", "IC 501", tt.DayAfter, nil},
		{"spaces ignored", "IC501", tt.DayAfter, nil},
		{"does not run", "IC 501", tt.Day, viewer.ErrTrainNotRunning},
		{"unknown", "EC 1", tt.Day, viewer.ErrTrainNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, trip, err := e.SearchTrain(ctx, viewer.State{Date: at(tc.day, 9, 0), Highlight: tt.TimedTrip}, tc.train)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, s.Highlight)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.SharingTrip, trip.ID)
			assert.Equal(t, tt.SharingTrip, s.Line)
			assert.Equal(t, tt.SharingTrip, s.Highlight)
			assert.Equal(t, at(tt.DayAfter, 10, 0), s.Date, "view moves to the first departure")
		})
	}
}

func TestClick(t *testing.T) {
	e := newEngine(t, tt.NewManager(t))
	base := viewer.State{Date: at(tt.Day, 8, 0), Role: query.PassesThrough, Line: tt.GapTrip, Highlight: tt.GapTrip}

	caster := func(name string) hit.RayCaster {
		return hit.CasterFunc(func(hit.Pointer, hit.Tier) []hit.Intersection {
			if name == "" {
				return nil
			}
			return []hit.Intersection{{Name: name, Distance: 2}}
		})
	}

	t.Run("station", func(t *testing.T) {
		s, res := e.Click(base, caster(hit.StationObjectName(tt.Beta)), hit.Pointer{}, 10*time.Millisecond)
		require.True(t, res.Hit)
		require.NotNil(t, s.Station)
		assert.Equal(t, "Beta", s.Station.Name)
		assert.Equal(t, query.PassesThrough, s.Role)
		assert.Zero(t, s.Line)
		assert.Zero(t, s.Highlight)
	})

	t.Run("trip", func(t *testing.T) {
		s, res := e.Click(base, caster(hit.TripObjectName(tt.SharingTrip, 86400)), hit.Pointer{}, 10*time.Millisecond)
		require.True(t, res.Hit)
		assert.Equal(t, tt.SharingTrip, s.Highlight)
		assert.Equal(t, tt.GapTrip, s.Line)
		require.NotNil(t, res.Trip)
		assert.Equal(t, "Gamma", res.Trip.To.Name)
		assert.Equal(t, 86400, res.Target.Offset)
	})

	t.Run("miss clears the highlight", func(t *testing.T) {
		s, res := e.Click(base, caster(""), hit.Pointer{}, 10*time.Millisecond)
		assert.False(t, res.Hit)
		assert.Zero(t, s.Highlight)
		assert.Equal(t, tt.GapTrip, s.Line)
	})

	t.Run("drag changes nothing", func(t *testing.T) {
		s, res := e.Click(base, caster(hit.StationObjectName(tt.Beta)), hit.Pointer{}, time.Second)
		assert.False(t, res.Hit)
		assert.Equal(t, base, s)
	})

	t.Run("unloaded trip", func(t *testing.T) {
		_, res := e.Click(base, caster(hit.TripObjectName(tt.ThroughCoachTrip, 0)), hit.Pointer{}, 0)
		assert.False(t, res.Hit)
	})
}

func TestTripDetail(t *testing.T) {
	e := newEngine(t, tt.NewManager(t))

	d, err := e.TripDetail(tt.SharingTrip)
	require.NoError(t, err)
	assert.Equal(t, "501", d.Number)
	assert.Empty(t, d.Name)
	assert.Equal(t, "Alpha", d.From.Name)
	assert.Equal(t, "Gamma", d.To.Name)
	assert.Equal(t, "10:00:00", d.Departure)
	assert.Equal(t, "10:20:00", d.Arrival)
	require.Len(t, d.Stops, 3)
	assert.Equal(t, "Beta", d.Stops[1].Station.Name)
	assert.False(t, d.Stops[1].Visit.DoesStop)
	assert.Empty(t, d.Stops[1].Arrival)
	assert.Equal(t, "10:10:00", railway.FormatClock(d.Stops[1].Visit.Arrival))

	_, err = e.TripDetail(404)
	assert.ErrorIs(t, err, query.ErrTripNotFound)
}

func TestNamedTrainDetail(t *testing.T) {
	feed := tt.Feed()
	feed.Trips[0].ShortName = "Ex 1001 Tatran"
	e := newEngine(t, tt.NewManagerFromFeed(t, feed, tt.Config()))

	d, err := e.TripDetail(tt.TimedTrip)
	require.NoError(t, err)
	assert.Equal(t, "1001", d.Number)
	assert.Equal(t, "Tatran", d.Name)
	assert.Equal(t, "ex", d.Trip.Category.ID)
}
