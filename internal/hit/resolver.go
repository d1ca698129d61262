// Package hit resolves a pointer position against rendered stations and trips.
package hit

import (
	"math"
	"sort"
	"time"

	"spacetime.railviz.dev/internal/metrics"
)

// Pointer is a position in normalized device coordinates, -1 to +1 on both axes.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tier is one ray cast: Radius is the line tolerance and MinDistance the
// near plane of the ray.
type Tier struct {
	Radius      float64 `json:"radius"`
	MinDistance float64 `json:"minDistance"`
}

// DefaultTiers widen the tolerance with distance, approximating a cone.
var DefaultTiers = []Tier{
	{Radius: 0.01, MinDistance: 0.01},
	{Radius: 0.02, MinDistance: 0.2},
	{Radius: 0.03, MinDistance: 0.4},
	{Radius: 0.04, MinDistance: 0.6},
	{Radius: 0.05, MinDistance: 1},
	{Radius: 0.07, MinDistance: 1.5},
}

// DefaultDebounce separates clicks from drags.
const DefaultDebounce = 250 * time.Millisecond

// Intersection is one object hit by a ray.
type Intersection struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// RayCaster is the rendering side's ray intersection primitive.
type RayCaster interface {
	Cast(p Pointer, t Tier) []Intersection
}

// CasterFunc adapts a function to RayCaster.
type CasterFunc func(p Pointer, t Tier) []Intersection

func (f CasterFunc) Cast(p Pointer, t Tier) []Intersection {
	return f(p, t)
}

type Resolver struct {
	Tiers    []Tier
	Debounce time.Duration
	metrics  *metrics.Collector
}

func NewResolver(collector *metrics.Collector) *Resolver {
	return &Resolver{Tiers: DefaultTiers, Debounce: DefaultDebounce, metrics: collector}
}

// Debounced reports whether a press held for pressed is a drag rather than
// a click.
func (r *Resolver) Debounced(pressed time.Duration) bool {
	return r.Debounce > 0 && pressed >= r.Debounce
}

// Resolve casts one ray per tier, in order, and returns the first selectable
// object of the first tier that has one. ok is false for a drag or a miss.
func (r *Resolver) Resolve(caster RayCaster, p Pointer, pressed time.Duration) (Target, bool) {
	if r.Debounced(pressed) {
		r.count("debounced")
		return Target{}, false
	}

	for _, tier := range r.Tiers {
		if t, ok := Nearest(caster.Cast(p, tier), tier); ok {
			r.count(t.Kind.String())
			return t, true
		}
	}
	r.count("miss")
	return Target{}, false
}

// Nearest picks the closest selectable intersection of one tier. Objects
// closer than the tier's near plane or behind the map are ignored.
func Nearest(hits []Intersection, tier Tier) (Target, bool) {
	sorted := make([]Intersection, 0, len(hits))
	for _, h := range hits {
		if h.Distance >= tier.MinDistance {
			sorted = append(sorted, h)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })

	maxDistance := math.Inf(1)
	for _, h := range sorted {
		if h.Name == MapObjectName {
			maxDistance = h.Distance
			break
		}
	}

	for _, h := range sorted {
		if h.Distance > maxDistance {
			break
		}
		if t, ok := Classify(h.Name); ok {
			t.Distance = h.Distance
			return t, true
		}
	}
	return Target{}, false
}

func (r *Resolver) count(outcome string) {
	if r.metrics != nil {
		r.metrics.Hits.WithLabelValues(outcome).Inc()
	}
}
