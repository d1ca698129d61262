package railway

import "strings"

// Trip is one scheduled run of a train.
type Trip struct {
	ID        int      `json:"id"`
	ServiceID int      `json:"serviceId"`
	ShapeID   int      `json:"shapeId"`
	Headsign  string   `json:"headsign"`
	ShortName string   `json:"shortName"`
	RouteName string   `json:"routeName"`
	Direction int      `json:"direction"`
	Category  Category `json:"category"`
	Journey   Journey  `json:"-"`
}

// NewTrip builds a trip and classifies it by its short name.
func NewTrip(id, serviceID, shapeID int, headsign, shortName, routeName string, direction int) *Trip {
	return &Trip{
		ID:        id,
		ServiceID: serviceID,
		ShapeID:   shapeID,
		Headsign:  headsign,
		ShortName: shortName,
		RouteName: routeName,
		Direction: direction,
		Category:  CategoryOf(shortName),
	}
}

// IsThroughCoach reports whether the trip is a through coach ("R 603/Os 1001")
// rather than a train of its own.
func (t *Trip) IsThroughCoach() bool {
	return strings.Contains(t.ShortName, "/")
}

// CompactName is the short name without spaces, used for search.
func (t *Trip) CompactName() string {
	return strings.ReplaceAll(t.ShortName, " ", "")
}
