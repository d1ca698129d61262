package hit

import (
	"fmt"
	"strconv"
	"strings"

	"spacetime.railviz.dev/internal/railway"
)

// Object names shared with the rendering side.
const (
	MapObjectName = "MAP"
	stationPrefix = "STATION "
	tripPrefix    = "TRAIN"
)

type Kind int

const (
	None Kind = iota
	StationHit
	TripHit
)

func (k Kind) String() string {
	switch k {
	case StationHit:
		return "station"
	case TripHit:
		return "trip"
	default:
		return "none"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "station":
		*k = StationHit
	case "trip":
		*k = TripHit
	case "none", "":
		*k = None
	default:
		return fmt.Errorf("unknown hit kind %q", b)
	}
	return nil
}

// Target is a classified scene object.
type Target struct {
	Kind      Kind    `json:"kind"`
	Name      string  `json:"name"`
	StationID int     `json:"stationId,omitempty"`
	TripID    int     `json:"tripId,omitempty"`
	Offset    int     `json:"offset"` // day offset of the rendered trip, seconds
	Distance  float64 `json:"distance"`
}

// StationObjectName is the scene name of a station marker.
func StationObjectName(stationID int) string {
	return stationPrefix + strconv.Itoa(stationID)
}

// TripObjectName is the scene name of a trip line drawn with the given day
// offset: TRAIN0<id> for the day itself, TRAIN+<id> and TRAIN-<id> for the
// following and previous day.
func TripObjectName(tripID, offset int) string {
	var sign byte = '0'
	switch {
	case offset > 0:
		sign = '+'
	case offset < 0:
		sign = '-'
	}
	return fmt.Sprintf("%s%c%d", tripPrefix, sign, tripID)
}

type classifier struct {
	prefix string
	parse  func(rest string) (Target, bool)
}

// classifiers are tried in order, first prefix match wins.
var classifiers = []classifier{
	{stationPrefix, parseStation},
	{tripPrefix, parseTrip},
}

// Classify decodes a scene object name. Unknown names, the map included,
// are not selectable.
func Classify(name string) (Target, bool) {
	for _, c := range classifiers {
		if rest, ok := strings.CutPrefix(name, c.prefix); ok {
			t, ok := c.parse(rest)
			if !ok {
				return Target{}, false
			}
			t.Name = name
			return t, true
		}
	}
	return Target{}, false
}

func parseStation(rest string) (Target, bool) {
	id, err := strconv.Atoi(rest)
	if err != nil {
		return Target{}, false
	}
	return Target{Kind: StationHit, StationID: id}, true
}

func parseTrip(rest string) (Target, bool) {
	if len(rest) < 2 {
		return Target{}, false
	}
	var offset int
	switch rest[0] {
	case '0':
	case '+':
		offset = railway.SecondsPerDay
	case '-':
		offset = -railway.SecondsPerDay
	default:
		return Target{}, false
	}
	id, err := strconv.Atoi(rest[1:])
	if err != nil {
		return Target{}, false
	}
	return Target{Kind: TripHit, TripID: id, Offset: offset}, true
}
