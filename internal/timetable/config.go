package timetable

import (
	"strings"

	"spacetime.railviz.dev/internal/appconf"
)

type Config struct {
	// GtfsURL is a local zip path or an http(s) url. When empty the
	// database is used as already imported.
	GtfsURL string
	DBPath  string
	Env     appconf.Environment
	Verbose bool

	// MaxTripID excludes trips with an id at or above it. Zero disables the
	// check. Trips with a non-positive id are always excluded.
	MaxTripID          int
	KeepThroughCoaches bool
}

// ConfigFrom derives the timetable configuration from the application config.
func ConfigFrom(cfg appconf.Config) Config {
	return Config{
		GtfsURL:            cfg.GtfsURL,
		DBPath:             cfg.DBPath,
		Env:                cfg.Env,
		Verbose:            cfg.Verbose,
		MaxTripID:          cfg.MaxTripID,
		KeepThroughCoaches: cfg.KeepThroughCoaches,
	}
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.GtfsURL, "http://") && !strings.HasPrefix(config.GtfsURL, "https://")
}
