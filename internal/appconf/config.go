package appconf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service. Values come from the
// environment (optionally seeded from a .env file) and may be overridden by
// command-line flags afterwards.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int // requests per second per API key

	DBPath   string
	GtfsURL  string
	Location *time.Location
	Verbose  bool

	// Trips with a larger numeric id are skipped at load time.
	MaxTripID int
	// Through coaches (short names containing "/") clutter the timeline and
	// are skipped unless this is set.
	KeepThroughCoaches bool
}

const (
	DefaultPort      = 4000
	DefaultRateLimit = 100
	DefaultMaxTripID = 20000000
	DefaultTimezone  = "Europe/Bratislava"
)

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               DefaultPort,
		Env:                EnvFlagToEnvironment(getenvDefault("RAILVIZ_ENV", "development")),
		RateLimit:          DefaultRateLimit,
		DBPath:             getenvDefault("RAILVIZ_DB", "railviz.db"),
		GtfsURL:            os.Getenv("RAILVIZ_GTFS_URL"),
		MaxTripID:          DefaultMaxTripID,
		KeepThroughCoaches: parseBool(os.Getenv("RAILVIZ_KEEP_THROUGH_COACHES")),
		Verbose:            parseBool(os.Getenv("RAILVIZ_VERBOSE")),
	}

	if v := os.Getenv("RAILVIZ_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return Config{}, fmt.Errorf("invalid RAILVIZ_PORT: %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("RAILVIZ_RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return Config{}, fmt.Errorf("invalid RAILVIZ_RATE_LIMIT: %q", v)
		}
		cfg.RateLimit = limit
	}

	if v := os.Getenv("RAILVIZ_MAX_TRIP_ID"); v != "" {
		maxID, err := strconv.Atoi(v)
		if err != nil || maxID <= 0 {
			return Config{}, fmt.Errorf("invalid RAILVIZ_MAX_TRIP_ID: %q", v)
		}
		cfg.MaxTripID = maxID
	}

	// the well-known key never applies in production
	defaultKeys := "test"
	if cfg.Env == Production {
		defaultKeys = ""
	}
	cfg.ApiKeys = SplitAPIKeys(getenvDefault("RAILVIZ_API_KEYS", defaultKeys))

	loc, err := time.LoadLocation(getenvDefault("RAILVIZ_TIMEZONE", DefaultTimezone))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RAILVIZ_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// SplitAPIKeys turns a comma separated list into trimmed, non-empty keys.
func SplitAPIKeys(raw string) []string {
	var keys []string
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
