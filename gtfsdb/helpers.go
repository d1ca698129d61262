package gtfsdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spacetime.railviz.dev/internal/appconf"
	"spacetime.railviz.dev/internal/logging"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var ddl string

// createDB creates a new SQLite database with tables for static GTFS data
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && !isInMemory(config.DBPath) {
		return nil, fmt.Errorf("test database must use in-memory storage, got %q", config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, err
	}

	configureConnectionPool(db, config.DBPath)

	ctx := context.Background()
	err = performDatabaseMigration(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return db, nil
}

func isInMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// configureConnectionPool sizes the pool. Every connection to an in-memory
// database sees its own private database, so those are pinned to one.
func configureConnectionPool(db *sql.DB, path string) {
	if isInMemory(path) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate") // Split DDL into individual statements
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue // Skip empty statements
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

// processAndStoreGTFSDataWithSource replaces the stored feed with b unless
// the same archive from the same source was imported last time.
func (c *Client) processAndStoreGTFSDataWithSource(ctx context.Context, b []byte, source string) (err error) {
	logger := logging.FromContext(ctx).With(slog.String("component", "gtfsdb"))

	sum := sha256.Sum256(b)
	hash := hex.EncodeToString(sum[:])

	previous, err := c.Queries.GetImportMetadata(ctx)
	switch {
	case err == nil && previous.FileHash == hash && previous.FileSource == source:
		logging.LogOperation(logger, "gtfs_import_skipped_unchanged",
			slog.String("source", source))
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("error reading import metadata: %w", err)
	}

	startTime := time.Now()
	defer func() {
		c.importRuntime = time.Since(startTime)

		if c.config.verbose {
			logging.LogOperation(logger, "gtfs_import_finished",
				slog.String("source", source),
				slog.Duration("duration", c.importRuntime))
		}
	}()

	feed, err := DecodeFeed(b)
	if err != nil {
		return err
	}

	var staticCounts map[string]int
	if c.config.verbose {
		staticCounts = c.reportStaticData(logger, b)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "import feed")

	qtx := c.Queries.WithTx(tx)
	if err := clearAllGTFSData(ctx, qtx); err != nil {
		return err
	}
	if err := storeFeed(ctx, qtx, feed); err != nil {
		return err
	}
	if err := qtx.UpsertImportMetadata(ctx, hash, source); err != nil {
		return fmt.Errorf("error storing import metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing import: %w", err)
	}

	if c.config.verbose {
		counts, err := c.TableCounts()
		if err != nil {
			return fmt.Errorf("failed to get table counts: %w", err)
		}
		for table, n := range counts {
			static, known := staticCounts[table]
			logger.Info("table_count",
				slog.String("table", table),
				slog.Int("rows", n),
				slog.Bool("static_matches", !known || static == n))
		}
	}

	return nil
}

// clearAllGTFSData empties every feed table. Import metadata is kept.
func (c *Client) clearAllGTFSData(ctx context.Context) error {
	return clearAllGTFSData(ctx, c.Queries)
}

func clearAllGTFSData(ctx context.Context, q *Queries) error {
	for _, table := range []string{"stop_times", "shapes", "calendar_dates", "trips", "stops", "routes"} {
		if _, err := q.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
	}
	return nil
}

func storeFeed(ctx context.Context, q *Queries, feed *Feed) error {
	if err := insertAll(ctx, feed.Routes, q.CreateRoute); err != nil {
		return err
	}
	if err := insertAll(ctx, feed.Stops, q.CreateStop); err != nil {
		return err
	}
	if err := insertAll(ctx, feed.Trips, q.CreateTrip); err != nil {
		return err
	}
	if err := insertAll(ctx, feed.StopTimes, q.CreateStopTime); err != nil {
		return err
	}
	if err := insertAll(ctx, feed.Shapes, q.CreateShape); err != nil {
		return err
	}
	return insertAll(ctx, feed.CalendarDates, q.CreateCalendarDate)
}

func insertAll[T any](ctx context.Context, rows []T, create func(context.Context, T) error) error {
	for _, row := range rows {
		if err := create(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func toNullInt64(i int64) sql.NullInt64 {
	if i != 0 {
		return sql.NullInt64{
			Int64: i,
			Valid: true,
		}
	}
	return sql.NullInt64{}
}

// toNullString converts a string to sql.NullString
func toNullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}
