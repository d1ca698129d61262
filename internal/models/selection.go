package models

import (
	"spacetime.railviz.dev/internal/hit"
	"spacetime.railviz.dev/internal/viewer"
)

// Selection answers a filter request.
type Selection struct {
	Station *Station     `json:"station,omitempty"`
	Role    string       `json:"role,omitempty"`
	Line    int          `json:"line,omitempty"`
	TripIDs []int        `json:"tripIds"`
	State   viewer.State `json:"state"`
}

// HitRequest carries the intersections the rendering side found for each
// tier, in tier order, together with the state the click happened in.
type HitRequest struct {
	Pointer   hit.Pointer          `json:"pointer"`
	PressedMs int64                `json:"pressedMs"`
	Tiers     [][]hit.Intersection `json:"tiers"`
	State     viewer.State         `json:"state"`
}

// HitResponse is the outcome of a click.
type HitResponse struct {
	Hit    bool         `json:"hit"`
	Target hit.Target   `json:"target"`
	Trip   *TripDetail  `json:"trip,omitempty"`
	State  viewer.State `json:"state"`
}

// SearchResult answers a train search.
type SearchResult struct {
	Trip  TripDetail   `json:"trip"`
	State viewer.State `json:"state"`
}
