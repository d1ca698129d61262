// Package projection maps geographic coordinates onto the planar display frame
// of the basemap image.
package projection

import "math"

// Frame is a rectangular display area covering a latitude and longitude range.
type Frame struct {
	MinLat, MaxLat   float64 // degrees
	MinLong, MaxLong float64 // degrees
	Width, Height    float64 // display units
}

// Default is the frame of the bundled basemap of the Slovak network.
var Default = Frame{
	MinLat:  47.693,
	MaxLat:  49.67,
	MinLong: 16.729,
	MaxLong: 22.706,
	Width:   7.31,
	Height:  3.663,
}

// toWebMercator is the vertical web mercator coordinate of a latitude. The
// axis is flipped so that it decreases going north.
func toWebMercator(deg float64) float64 {
	return 180*(math.Pi-math.Log(math.Tan(math.Pi/4+math.Pi*deg/360))) - math.Pi
}

// Z is the display coordinate of a latitude. The frame centre maps to 0 and
// north is negative, matching a scene whose z axis points south.
func (f Frame) Z(lat float64) float64 {
	minLat := toWebMercator(f.MinLat)
	latDif := toWebMercator(f.MaxLat) - minLat
	return -f.Height * ((toWebMercator(lat)-minLat)/latDif - 0.5)
}

// X is the display coordinate of a longitude. The frame centre maps to 0 and
// east is positive.
func (f Frame) X(long float64) float64 {
	return f.Width * ((long-f.MinLong)/(f.MaxLong-f.MinLong) - 0.5)
}

// Point is a projected position.
type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

func (f Frame) Project(lat, long float64) Point {
	return Point{X: f.X(long), Z: f.Z(lat)}
}

// Contains reports whether the coordinate falls inside the frame bounds.
func (f Frame) Contains(lat, long float64) bool {
	return lat >= f.MinLat && lat <= f.MaxLat && long >= f.MinLong && long <= f.MaxLong
}
