package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"spacetime.railviz.dev/internal/app"
	"spacetime.railviz.dev/internal/restapi"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "load the timetable and serve the API",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Usage: "API server port", EnvVars: []string{"RAILVIZ_PORT"}},
			&cli.StringFlag{Name: "api-keys", Usage: "comma separated API keys", EnvVars: []string{"RAILVIZ_API_KEYS"}},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}
			if len(cfg.ApiKeys) == 0 {
				logger.Warn("no api keys configured, every api request will be rejected")
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to load timetable: %w", err)
			}
			defer application.Shutdown()
			application.Timetable.PrintStatistics()

			api := restapi.NewRestAPI(application)
			defer api.Stop()

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Port),
				Handler:      api.Handler(),
				IdleTimeout:  time.Minute,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
				ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func isRemote(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
