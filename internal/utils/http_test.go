package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveParam(t *testing.T, raw string, handle func(r *http.Request)) {
	t.Helper()
	router := httprouter.New()
	router.Handler(http.MethodGet, "/trips/:id", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle(r)
	}))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trips/"+raw, nil))
}

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{"plain", "123", "123"},
		{"json extension", "456.json", "456"},
		{"only the suffix", "789.data.json", "789.data"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			serveParam(t, tc.id, func(r *http.Request) { got = ExtractIDFromParams(r, "id") })
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractIntIDFromParams(t *testing.T) {
	testCases := []struct {
		id      string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"42.json", 42, false},
		{"abc", 0, true},
		{"1;drop", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			var (
				got int
				err error
			)
			serveParam(t, tc.id, func(r *http.Request) { got, err = ExtractIntIDFromParams(r, "id") })
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseParams(t *testing.T) {
	params := url.Values{
		"lat":    {"48.15"},
		"bad":    {"north"},
		"line":   {"7"},
		"hidden": {"os, ,ic"},
	}

	lat, errs := ParseFloatParam(params, "lat", nil)
	assert.Equal(t, 48.15, lat)
	assert.Empty(t, errs)

	_, errs = ParseFloatParam(params, "bad", errs)
	assert.Contains(t, errs, "bad")

	line, errs := ParseIntParam(params, "line", nil)
	assert.Equal(t, 7, line)
	assert.Empty(t, errs)

	missing, errs := ParseIntParam(params, "highlight", nil)
	assert.Zero(t, missing)
	assert.Empty(t, errs)

	assert.Equal(t, []string{"os", "ic"}, ParseListParam(params, "hidden"))
	assert.Nil(t, ParseListParam(params, "none"))
}

func TestParseTimeParameter(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"empty is now", "", now, true},
		{"date", "2025-03-11", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), true},
		{"compact date", "20250311", time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), true},
		{"epoch millis", "1741617000000", time.UnixMilli(1741617000000).UTC(), true},
		{"rfc3339", "2025-03-10T08:00:00Z", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), true},
		{"garbage", "soon", time.Time{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, errs, ok := ParseTimeParameter(tc.in, time.UTC, now)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				assert.Contains(t, errs, "time")
				return
			}
			assert.True(t, tc.want.Equal(got), "got %s", got)
		})
	}
}
