// Package viewer composes the timetable, calendar, query and hit packages
// into the operations behind the space-time view. Every operation takes the
// current State and returns the next one; nothing is kept between calls.
package viewer

import (
	"slices"
	"time"

	"spacetime.railviz.dev/internal/query"
	"spacetime.railviz.dev/internal/railway"
)

// State is everything the view depends on. The station filter and the line
// filter replace each other: setting one clears the other.
type State struct {
	// Date is the viewed moment. Its calendar day picks the window and its
	// time of day positions the cursor.
	Date      time.Time        `json:"date"`
	Station   *railway.Station `json:"station,omitempty"`
	Role      query.Role       `json:"role"`
	Line      int              `json:"line,omitempty"`
	Highlight int              `json:"highlight,omitempty"`
	Hidden    []string         `json:"hidden,omitempty"` // category ids
}

func (s State) withStation(st railway.Station, role query.Role) State {
	s.Station = &st
	s.Role = role
	s.Line = 0
	return s
}

func (s State) withLine(tripID int) State {
	s.Station = nil
	s.Line = tripID
	return s
}

// Deselect clears both filters and the highlighted trip.
func Deselect(s State) State {
	s.Station = nil
	s.Line = 0
	s.Highlight = 0
	return s
}

// SetCategoryVisible shows or hides the trips of one category.
func SetCategoryVisible(s State, categoryID string, visible bool) State {
	hidden := slices.DeleteFunc(slices.Clone(s.Hidden), func(id string) bool { return id == categoryID })
	if !visible {
		hidden = append(hidden, categoryID)
	}
	s.Hidden = hidden
	return s
}

// Shows reports whether trips of the category are drawn.
func (s State) Shows(c railway.Category) bool {
	return c.Visible && !slices.Contains(s.Hidden, c.ID)
}
