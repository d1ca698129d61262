package models

import "math"

// Finite returns nil for NaN and infinities so that they encode as null.
func Finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
