package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"spacetime.railviz.dev/internal/calendar"
	"spacetime.railviz.dev/internal/hit"
	"spacetime.railviz.dev/internal/projection"
	"spacetime.railviz.dev/internal/query"
	"spacetime.railviz.dev/internal/railway"
)

// TimeScale converts timeline seconds to vertical display units.
const TimeScale = 0.0001

var (
	ErrTrainNotFound   = errors.New("train not found")
	ErrTrainNotRunning = errors.New("train does not run on this day")
)

// Timetable is what the engine reads from the loaded model.
type Timetable interface {
	query.Timetable
	Stations() []railway.Station
}

type Engine struct {
	timetable Timetable
	calendar  *calendar.Resolver
	hits      *hit.Resolver
	frame     projection.Frame
	logger    *slog.Logger
}

func NewEngine(tt Timetable, cal *calendar.Resolver, hits *hit.Resolver, frame projection.Frame, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		timetable: tt,
		calendar:  cal,
		hits:      hits,
		frame:     frame,
		logger:    logger.With(slog.String("component", "viewer")),
	}
}

// Calendar is the resolver the engine windows scenes with.
func (e *Engine) Calendar() *calendar.Resolver {
	return e.calendar
}

// Selection is the active filter of the state as a predicate, nil when no
// filter is set. A line filter whose reference trip is gone selects nothing.
func (e *Engine) Selection(s State) query.Predicate {
	switch {
	case s.Line > 0:
		sel, err := query.TransferCorrelation(e.timetable, s.Line)
		if err != nil {
			return query.Selection{}
		}
		return sel
	case s.Station != nil:
		return query.StationFilter{Station: s.Station, Role: s.Role}
	default:
		return nil
	}
}

// SelectStation filters by the named station. found is false, and the state
// is returned unchanged, when no station has that name.
func (e *Engine) SelectStation(s State, name string, role query.Role) (next State, found bool) {
	st, ok := e.timetable.StationByName(name)
	if !ok {
		return s, false
	}
	return s.withStation(st, role), true
}

// SelectStationByID filters by a station keeping the current role.
func (e *Engine) SelectStationByID(s State, id int) (State, bool) {
	st, ok := e.timetable.Station(id)
	if !ok {
		return s, false
	}
	return s.withStation(st, s.Role), true
}

// SelectLine filters by transfer correlation with the trip and highlights it.
func (e *Engine) SelectLine(s State, tripID int) (State, error) {
	if _, ok := e.timetable.Trip(tripID); !ok {
		return s, query.ErrTripNotFound
	}
	s = s.withLine(tripID)
	s.Highlight = tripID
	return s, nil
}

// SearchTrain finds a train by name among those running on the state's day
// and selects its line. The view moves to the train's first departure.
func (e *Engine) SearchTrain(ctx context.Context, s State, name string) (State, *railway.Trip, error) {
	s.Highlight = 0

	var lookupErr error
	runs := func(trip *railway.Trip) bool {
		ok, err := e.calendar.RunsOn(ctx, trip.ID, s.Date)
		if err != nil {
			lookupErr = err
			return false
		}
		return ok
	}

	trip, found := query.FindTripByName(e.timetable, name, runs)
	if lookupErr != nil {
		return s, nil, fmt.Errorf("error checking service day: %w", lookupErr)
	}
	if !found {
		if _, exists := query.FindTripByName(e.timetable, name, nil); exists {
			return s, nil, ErrTrainNotRunning
		}
		return s, nil, ErrTrainNotFound
	}

	if first, ok := trip.Journey.First(); ok {
		midnight := calendar.Midnight(s.Date, e.calendar.Location())
		s.Date = midnight.Add(time.Duration(first.Departure) * time.Second)
	}

	next, err := e.SelectLine(s, trip.ID)
	return next, trip, err
}

// ClickResult is the outcome of a pointer release.
type ClickResult struct {
	Target hit.Target `json:"target"`
	Hit    bool       `json:"hit"`
	Trip   *Detail    `json:"trip,omitempty"`
}

// Click resolves a pointer release. A drag leaves the state untouched.
// Otherwise the highlight is cleared, then a station hit filters by that
// station and a trip hit highlights the trip.
func (e *Engine) Click(s State, caster hit.RayCaster, p hit.Pointer, pressed time.Duration) (State, ClickResult) {
	drag := e.hits.Debounced(pressed)
	target, ok := e.hits.Resolve(caster, p, pressed)
	if drag {
		return s, ClickResult{}
	}

	s.Highlight = 0
	if !ok {
		return s, ClickResult{}
	}

	result := ClickResult{Target: target, Hit: true}
	switch target.Kind {
	case hit.StationHit:
		s, result.Hit = e.SelectStationByID(s, target.StationID)
	case hit.TripHit:
		detail, err := e.TripDetail(target.TripID)
		if err != nil {
			e.logger.Warn("clicked trip is not loaded", slog.Int("trip_id", target.TripID))
			result.Hit = false
			break
		}
		s.Highlight = target.TripID
		result.Trip = &detail
	}
	return s, result
}

// StationMarker is a station drawn on the map plane.
type StationMarker struct {
	railway.Station
	Object string `json:"object"`
	projection.Point
}

// TimelinePoint is one vertex of a trip line. Time is seconds on the
// continuous timeline and Y its display height; both are NaN for a visit
// whose time could not be reconstructed.
type TimelinePoint struct {
	projection.Point
	StopID int
	Time   float64
	Y      float64
}

// TripLine is one placement of a trip on the timeline.
type TripLine struct {
	TripID     int
	Object     string
	Offset     int
	Emphasized bool
	Category   railway.Category
	Points     []TimelinePoint
}

// Scene is what the rendering side draws for a state.
type Scene struct {
	Date     int
	Cursor   float64 // seconds since midnight of Date
	Stations []StationMarker
	Selected *StationMarker
	Lines    []TripLine
}

// Scene resolves the window of the state's day and lays out every placement
// that passes the active filter and the hidden categories.
func (e *Engine) Scene(ctx context.Context, s State) (Scene, error) {
	w, err := e.calendar.ResolveWindow(ctx, s.Date)
	if err != nil {
		return Scene{}, err
	}

	local := s.Date.In(e.calendar.Location())
	scene := Scene{
		Date:   w.Date,
		Cursor: local.Sub(calendar.Midnight(local, e.calendar.Location())).Seconds(),
	}

	for _, st := range e.timetable.Stations() {
		scene.Stations = append(scene.Stations, e.marker(st))
	}
	if s.Station != nil {
		m := e.marker(*s.Station)
		scene.Selected = &m
	}

	filter := placementFilter{tt: e.timetable, predicate: e.Selection(s), state: s}
	for _, p := range w.Placements(filter, s.Highlight) {
		trip, _ := e.timetable.Trip(p.TripID)
		scene.Lines = append(scene.Lines, TripLine{
			TripID:     trip.ID,
			Object:     hit.TripObjectName(trip.ID, p.Offset),
			Offset:     p.Offset,
			Emphasized: p.Emphasized,
			Category:   trip.Category,
			Points:     e.timelinePoints(trip, p.Offset),
		})
	}
	return scene, nil
}

func (e *Engine) marker(st railway.Station) StationMarker {
	return StationMarker{
		Station: st,
		Object:  hit.StationObjectName(st.ID),
		Point:   e.frame.Project(st.Lat, st.Long),
	}
}

// timelinePoints emits an arrival and a departure vertex per visit. A time
// lower than the one before it means the trip crossed midnight, so the
// offset advances by a day from there on.
func (e *Engine) timelinePoints(trip *railway.Trip, offset int) []TimelinePoint {
	points := make([]TimelinePoint, 0, 2*len(trip.Journey))
	shift := float64(offset)
	prev := math.Inf(-1)
	if first, ok := trip.Journey.First(); ok && !math.IsNaN(first.Arrival) {
		prev = first.Arrival
	}

	for _, visit := range trip.Journey {
		st, ok := e.timetable.Station(visit.StopID)
		if !ok {
			continue
		}
		at := e.frame.Project(st.Lat, st.Long)
		for _, t := range [2]float64{visit.Arrival, visit.Departure} {
			if !math.IsNaN(t) {
				if t < prev {
					shift += railway.SecondsPerDay
				}
				prev = t
			}
			points = append(points, TimelinePoint{
				Point:  at,
				StopID: visit.StopID,
				Time:   t + shift,
				Y:      (t + shift) * TimeScale,
			})
		}
	}
	return points
}

type placementFilter struct {
	tt        Timetable
	predicate query.Predicate
	state     State
}

func (f placementFilter) Includes(tripID int) bool {
	trip, ok := f.tt.Trip(tripID)
	if !ok || !f.state.Shows(trip.Category) {
		return false
	}
	return f.predicate == nil || f.predicate.Match(trip)
}
