package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameCorners(t *testing.T) {
	f := Default

	// south-west corner
	sw := f.Project(f.MinLat, f.MinLong)
	assert.InDelta(t, -f.Width/2, sw.X, 1e-9)
	assert.InDelta(t, f.Height/2, sw.Z, 1e-9)

	// north-east corner
	ne := f.Project(f.MaxLat, f.MaxLong)
	assert.InDelta(t, f.Width/2, ne.X, 1e-9)
	assert.InDelta(t, -f.Height/2, ne.Z, 1e-9)
}

func TestFrameIsMonotonic(t *testing.T) {
	f := Default

	assert.Less(t, f.X(17.0), f.X(18.0), "east is positive")
	assert.Greater(t, f.Z(48.0), f.Z(49.0), "north is negative")
}

func TestMercatorStretchesNorth(t *testing.T) {
	f := Default

	// equal latitude steps cover more display distance further north
	south := f.Z(47.8) - f.Z(48.0)
	north := f.Z(49.4) - f.Z(49.6)
	assert.Greater(t, north, south)
}

func TestContains(t *testing.T) {
	assert.True(t, Default.Contains(48.1486, 17.1077))
	assert.False(t, Default.Contains(52.52, 13.405))
}
