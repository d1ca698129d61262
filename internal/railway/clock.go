package railway

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnknownTime marks a visit time that is not in the timetable.
const UnknownTime = -1.0

// SecondsPerDay is the length of one day bucket on the timeline.
const SecondsPerDay = 86400

// ParseClock converts a feed time of the form HH:MM:SS to seconds since
// local midnight. Hours may exceed 23 for trips running past midnight.
// Empty, short or malformed values yield UnknownTime.
func ParseClock(s string) float64 {
	s = strings.TrimSpace(s)
	if len(s) < 6 {
		return UnknownTime
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return UnknownTime
	}

	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return UnknownTime
		}
		fields[i] = v
	}
	if fields[1] > 59 || fields[2] > 59 {
		return UnknownTime
	}

	return float64(fields[0]*3600 + fields[1]*60 + fields[2])
}

// FormatClock renders seconds since midnight as HH:MM:SS, wrapping at 24h.
// Non-finite and unknown values render as "--:--:--".
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "--:--:--"
	}

	total := int(math.Round(seconds)) % SecondsPerDay
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
