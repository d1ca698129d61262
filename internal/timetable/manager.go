package timetable

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tidwall/rtree"
	"spacetime.railviz.dev/gtfsdb"
	"spacetime.railviz.dev/internal/logging"
	"spacetime.railviz.dev/internal/metrics"
	"spacetime.railviz.dev/internal/railway"
)

// Manager owns the loaded timetable. It is read-only once Load returns.
type Manager struct {
	GtfsDB  *gtfsdb.Client
	config  Config
	metrics *metrics.Collector
	logger  *slog.Logger

	stations      []railway.Station
	stationsByID  map[int]int
	trips         []*railway.Trip
	tripsByID     map[int]*railway.Trip
	rejected      []Rejection
	stationIndex  *rtree.RTree
	ambiguousKeys int
	lastLoaded    time.Time
	loadDuration  time.Duration

	shutdownOnce sync.Once
}

// InitManager opens the database, imports the configured feed if any and
// loads the timetable.
func InitManager(ctx context.Context, config Config, collector *metrics.Collector, logger *slog.Logger) (*Manager, error) {
	client, err := gtfsdb.NewClient(gtfsdb.NewConfig(config.DBPath, config.Env, config.Verbose))
	if err != nil {
		return nil, fmt.Errorf("failed to create GTFS database client: %w", err)
	}

	ctx = logging.WithLogger(ctx, logger)
	if config.GtfsURL != "" {
		if config.isLocalFile() {
			err = client.ImportFromFile(ctx, config.GtfsURL)
		} else {
			err = client.DownloadAndStore(ctx, config.GtfsURL)
		}
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("error importing GTFS data from %s: %w", config.GtfsURL, err)
		}
	}

	manager := NewManager(client, config, collector, logger)
	if err := manager.Load(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return manager, nil
}

// NewManager wraps an open database. Call Load before using the lookups.
func NewManager(client *gtfsdb.Client, config Config, collector *metrics.Collector, logger *slog.Logger) *Manager {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		GtfsDB:       client,
		config:       config,
		metrics:      collector,
		logger:       logger.With(slog.String("component", "timetable")),
		stationsByID: map[int]int{},
		tripsByID:    map[int]*railway.Trip{},
		stationIndex: &rtree.RTree{},
	}
}

// Shutdown closes the database
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		if manager.GtfsDB != nil {
			logging.SafeCloseWithLogging(manager.GtfsDB, manager.logger, "close timetable database")
		}
	})
}

// Queries exposes the row queries of the backing database.
func (manager *Manager) Queries() *gtfsdb.Queries {
	return manager.GtfsDB.Queries
}

func (manager *Manager) Metrics() *metrics.Collector {
	return manager.metrics
}

// Statistics summarises the last load.
type Statistics struct {
	Stations           int            `json:"stations"`
	Trips              int            `json:"trips"`
	Rejected           int            `json:"rejected"`
	RejectedByReason   map[string]int `json:"rejectedByReason"`
	TripsWithDefects   int            `json:"tripsWithDefects"`
	AmbiguousLocations int            `json:"ambiguousLocations"`
	LastLoaded         time.Time      `json:"lastLoaded"`
	LoadDuration       time.Duration  `json:"loadDuration"`
}

func (manager *Manager) Statistics() Statistics {
	stats := Statistics{
		Stations:           len(manager.stations),
		Trips:              len(manager.trips),
		Rejected:           len(manager.rejected),
		RejectedByReason:   map[string]int{},
		AmbiguousLocations: manager.ambiguousKeys,
		LastLoaded:         manager.lastLoaded,
		LoadDuration:       manager.loadDuration,
	}
	for _, r := range manager.rejected {
		stats.RejectedByReason[r.Reason]++
	}
	for _, trip := range manager.trips {
		if len(trip.Journey.Defects()) > 0 {
			stats.TripsWithDefects++
		}
	}
	return stats
}

// PrintStatistics logs a summary of the loaded timetable.
func (manager *Manager) PrintStatistics() {
	stats := manager.Statistics()
	logging.LogOperation(manager.logger, "timetable_statistics",
		slog.Int("stations", stats.Stations),
		slog.Int("trips", stats.Trips),
		slog.Int("rejected", stats.Rejected),
		slog.Int("trips_with_defects", stats.TripsWithDefects),
		slog.Int("ambiguous_locations", stats.AmbiguousLocations),
		slog.Duration("duration", stats.LoadDuration))
}
