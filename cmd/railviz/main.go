package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"spacetime.railviz.dev/internal/appconf"
	"spacetime.railviz.dev/internal/logging"

	_ "time/tzdata"
)

func main() {
	app := &cli.App{
		Name:  "railviz",
		Usage: "space-time diagram of a railway timetable",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env", Usage: "environment (development|test|production)", EnvVars: []string{"RAILVIZ_ENV"}},
			&cli.StringFlag{Name: "db", Usage: "sqlite database path, :memory: for a transient one", EnvVars: []string{"RAILVIZ_DB"}},
			&cli.StringFlag{Name: "gtfs-url", Usage: "GTFS zip to import, a local path or an http(s) url", EnvVars: []string{"RAILVIZ_GTFS_URL"}},
			&cli.StringFlag{Name: "timezone", Usage: "timezone of the service days", EnvVars: []string{"RAILVIZ_TIMEZONE"}},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging", EnvVars: []string{"RAILVIZ_VERBOSE"}},
		},
		Commands: []*cli.Command{
			importCommand(),
			serveCommand(),
			inspectCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the global flags on top.
func loadConfig(c *cli.Context) (appconf.Config, *slog.Logger, error) {
	cfg, err := appconf.Load()
	if err != nil {
		return appconf.Config{}, nil, err
	}

	if c.IsSet("env") {
		cfg.Env = appconf.EnvFlagToEnvironment(c.String("env"))
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("gtfs-url") {
		cfg.GtfsURL = c.String("gtfs-url")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
	if c.IsSet("timezone") {
		loc, err := time.LoadLocation(c.String("timezone"))
		if err != nil {
			return appconf.Config{}, nil, fmt.Errorf("invalid timezone: %w", err)
		}
		cfg.Location = loc
	}
	if c.IsSet("api-keys") {
		cfg.ApiKeys = appconf.SplitAPIKeys(c.String("api-keys"))
	}

	logger := logging.NewLogger(os.Stdout, cfg.Env, cfg.Verbose)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func requireGtfsURL(cfg appconf.Config) error {
	if strings.TrimSpace(cfg.GtfsURL) == "" {
		return fmt.Errorf("no GTFS feed given, set --gtfs-url or RAILVIZ_GTFS_URL")
	}
	return nil
}
