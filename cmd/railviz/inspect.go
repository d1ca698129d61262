package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"spacetime.railviz.dev/internal/app"
	"spacetime.railviz.dev/internal/calendar"
	"spacetime.railviz.dev/internal/models"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "load the timetable and print statistics, a day window or a trip",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "print the three day window around YYYY-MM-DD"},
			&cli.IntFlag{Name: "trip", Usage: "print the stop list of a trip"},
			&cli.BoolFlag{Name: "rejected", Usage: "print the trips skipped at load time"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}

			application, err := app.New(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			defer application.Shutdown()

			var out interface{}
			switch {
			case c.IsSet("trip"):
				detail, err := application.Engine.TripDetail(c.Int("trip"))
				if err != nil {
					return fmt.Errorf("trip %d: %w", c.Int("trip"), err)
				}
				out = models.NewTripDetail(detail)
			case c.IsSet("date"):
				date, err := calendar.ParseDate(c.String("date"), cfg.Location)
				if err != nil {
					return err
				}
				out, err = application.Calendar.ResolveWindow(c.Context, date)
				if err != nil {
					return err
				}
			case c.Bool("rejected"):
				out = application.Timetable.Rejected()
			default:
				out = application.Timetable.Statistics()
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

