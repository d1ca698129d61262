package app

import (
	"context"
	"log/slog"

	"spacetime.railviz.dev/internal/appconf"
	"spacetime.railviz.dev/internal/calendar"
	"spacetime.railviz.dev/internal/hit"
	"spacetime.railviz.dev/internal/metrics"
	"spacetime.railviz.dev/internal/projection"
	"spacetime.railviz.dev/internal/timetable"
	"spacetime.railviz.dev/internal/viewer"
)

// Application holds the dependencies shared by the HTTP handlers, the debug
// pages and the command line.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Metrics   *metrics.Collector
	Timetable *timetable.Manager
	Calendar  *calendar.Resolver
	Engine    *viewer.Engine
}

// New imports the configured feed if any, loads the timetable and wires the
// viewer engine on top of it.
func New(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	collector := metrics.NewCollector()
	manager, err := timetable.InitManager(ctx, timetable.ConfigFrom(cfg), collector, logger)
	if err != nil {
		return nil, err
	}
	return NewWithTimetable(cfg, manager, logger), nil
}

// NewWithTimetable wires an application around an already loaded timetable.
func NewWithTimetable(cfg appconf.Config, manager *timetable.Manager, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	collector := manager.Metrics()
	cal := calendar.NewResolver(manager.Queries(), cfg.Location, collector)
	engine := viewer.NewEngine(manager, cal, hit.NewResolver(collector), projection.Default, logger)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Metrics:   collector,
		Timetable: manager,
		Calendar:  cal,
		Engine:    engine,
	}
}

// Shutdown releases the timetable database.
func (app *Application) Shutdown() {
	app.Timetable.Shutdown()
}
