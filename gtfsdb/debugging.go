package gtfsdb

import (
	"fmt"
	"log/slog"

	"github.com/jamespfennell/gtfs"
	"spacetime.railviz.dev/internal/logging"
)

// reportStaticData parses the archive with the reference GTFS parser and logs
// its warnings. The counts are compared against table counts after import.
func (c *Client) reportStaticData(logger *slog.Logger, b []byte) map[string]int {
	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		logging.LogError(logger, "reference gtfs parser rejected feed", err)
		return nil
	}

	logger.Info("retrieved static data", slog.Int("warnings", len(staticData.Warnings)))
	for _, w := range staticData.Warnings {
		logger.Warn("gtfs_warning", slog.String("warning", fmt.Sprint(w)))
	}

	counts := c.staticDataCounts(staticData)
	for k, v := range counts {
		logger.Info("static_count", slog.String("table", k), slog.Int("rows", v))
	}
	return counts
}

func (c *Client) staticDataCounts(staticData *gtfs.Static) map[string]int {
	stopTimes := 0
	for _, trip := range staticData.Trips {
		stopTimes += len(trip.StopTimes)
	}

	return map[string]int{
		"routes":     len(staticData.Routes),
		"stops":      len(staticData.Stops),
		"trips":      len(staticData.Trips),
		"stop_times": stopTimes,
	}
}

func (c *Client) TableCounts() (map[string]int, error) {
	rows, err := c.DB.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("failed to query table names: %w", err)
	}
	var tables []string

	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	counts := make(map[string]int)

	for _, table := range tables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		err := c.DB.QueryRow(query).Scan(&count)
		if err != nil {
			return nil, err
		}
		counts[table] = count
	}

	return counts, nil
}
