package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"spacetime.railviz.dev/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"alpha", "beta"},
		},
	}

	tests := []struct {
		name    string
		target  string
		header  string
		invalid bool
	}{
		{"query key", "/api/stations?key=alpha", "", false},
		{"second key", "/api/stations?key=beta", "", false},
		{"header key", "/api/stations", "beta", false},
		{"query wins over header", "/api/stations?key=gamma", "alpha", true},
		{"unknown key", "/api/stations?key=gamma", "", true},
		{"no key", "/api/stations", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				r.Header.Set("X-API-Key", tt.header)
			}
			assert.Equal(t, tt.invalid, app.RequestHasInvalidAPIKey(r))
		})
	}
}
