package railway

import "math"

// Station is a physical stop. Stations are immutable after load.
type Station struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Key returns the quantized coordinate of the station.
func (s Station) Key() CoordKey {
	return KeyOf(s.Lat, s.Long)
}

// coordScale quantizes coordinates to 1e-7 degrees, roughly a centimetre.
const coordScale = 1e7

// CoordKey is a coordinate quantized to a fixed grid so it can be compared
// and used as a map key. Shape points are matched to stations and trips are
// correlated through the same key.
type CoordKey struct {
	Lat  int64
	Long int64
}

func KeyOf(lat, long float64) CoordKey {
	return CoordKey{
		Lat:  int64(math.Round(lat * coordScale)),
		Long: int64(math.Round(long * coordScale)),
	}
}

// PlanarDistance is the Euclidean distance between the raw latitude and
// longitude pairs of two stations. It is only meaningful relative to other
// planar distances.
func PlanarDistance(a, b Station) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Long-b.Long)
}
