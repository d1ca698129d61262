package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spacetime.railviz.dev/internal/calendar"
)

// ParseFloatParam retrieves a float64 query parameter. A missing value is 0;
// an invalid one is 0 and is recorded in fieldErrors.
func ParseFloatParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return f, fieldErrors
}

// ParseIntParam retrieves an integer query parameter the way ParseFloatParam does.
func ParseIntParam(params url.Values, key string, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return i, fieldErrors
}

// ParseListParam splits a comma separated query parameter, dropping empty items.
func ParseListParam(params url.Values, key string) []string {
	var out []string
	for _, item := range strings.Split(params.Get(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ParseTimeParameter reads a moment from a query value. It accepts epoch
// milliseconds, YYYY-MM-DD (midnight), or RFC 3339. An empty value is now.
func ParseTimeParameter(timeParam string, loc *time.Location, now time.Time) (time.Time, map[string][]string, bool) {
	if timeParam == "" {
		return now.In(loc), nil, true
	}

	if epoch, err := strconv.ParseInt(timeParam, 10, 64); err == nil && len(timeParam) > 8 {
		return time.UnixMilli(epoch).In(loc), nil, true
	}
	if t, err := calendar.ParseDate(timeParam, loc); err == nil {
		return t, nil, true
	}
	if t, err := time.Parse(time.RFC3339, timeParam); err == nil {
		return t.In(loc), nil, true
	}

	fieldErrors := map[string][]string{
		"time": {"Invalid field value for field \"time\"."},
	}
	return time.Time{}, fieldErrors, false
}
