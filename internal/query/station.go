package query

import (
	"fmt"

	"spacetime.railviz.dev/internal/railway"
)

// Role is how a trip relates to a station.
type Role int

const (
	// CallsAt is the zero value: a timetabled stop at the station.
	CallsAt Role = iota
	OriginatesAt
	TerminatesAt
	PassesThrough
)

var roleNames = []struct {
	role Role
	name string
}{
	{OriginatesAt, "starts"},
	{TerminatesAt, "ends"},
	{CallsAt, "stops"},
	{PassesThrough, "passes"},
}

func (r Role) String() string {
	for _, rn := range roleNames {
		if rn.role == r {
			return rn.name
		}
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole accepts starts, ends, stops and passes. An empty string is CallsAt.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return CallsAt, nil
	}
	for _, rn := range roleNames {
		if rn.name == s {
			return rn.role, nil
		}
	}
	return CallsAt, fmt.Errorf("unknown station role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	role, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// StationFilter matches trips by their relation to one station. A nil
// Station matches every trip.
type StationFilter struct {
	Station *railway.Station
	Role    Role
}

func (f StationFilter) Match(trip *railway.Trip) bool {
	if f.Station == nil {
		return true
	}
	id := f.Station.ID
	switch f.Role {
	case OriginatesAt:
		first, ok := trip.Journey.First()
		return ok && first.StopID == id
	case TerminatesAt:
		last, ok := trip.Journey.Last()
		return ok && last.StopID == id
	case CallsAt:
		return trip.Journey.CallsAt(id)
	case PassesThrough:
		return trip.Journey.Passes(id)
	default:
		return false
	}
}

// SelectByStationName looks the station up by name and selects the trips
// with the given role there. found is false when no station has that name,
// in which case the caller keeps its current selection.
func SelectByStationName(tt Timetable, name string, role Role) (sel Selection, station railway.Station, found bool) {
	station, found = tt.StationByName(name)
	if !found {
		return nil, railway.Station{}, false
	}
	return Select(tt, StationFilter{Station: &station, Role: role}), station, true
}
