package main

import (
	"log/slog"

	"github.com/urfave/cli/v2"
	"spacetime.railviz.dev/gtfsdb"
	"spacetime.railviz.dev/internal/logging"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import a GTFS feed into the database",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := requireGtfsURL(cfg); err != nil {
				return err
			}

			client, err := gtfsdb.NewClient(gtfsdb.NewConfig(cfg.DBPath, cfg.Env, cfg.Verbose))
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(client, logger, "close database")

			ctx := logging.WithLogger(c.Context, logger)
			if isRemote(cfg.GtfsURL) {
				err = client.DownloadAndStore(ctx, cfg.GtfsURL)
			} else {
				err = client.ImportFromFile(ctx, cfg.GtfsURL)
			}
			if err != nil {
				return err
			}

			logging.LogOperation(logger, "gtfs_imported",
				slog.String("source", cfg.GtfsURL),
				slog.String("db", cfg.DBPath),
				slog.Duration("duration", client.ImportRuntime()))
			return nil
		},
	}
}
