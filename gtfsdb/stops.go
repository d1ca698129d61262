package gtfsdb

import (
	"context"
	"fmt"
)

// Stop represents a station in the GTFS feed
type Stop struct {
	ID   int     `csv:"stop_id"`   // stop_id
	Name string  `csv:"stop_name"` // stop_name
	Lat  float64 `csv:"stop_lat"`  // stop_lat
	Lon  float64 `csv:"stop_lon"`  // stop_lon
}

const createStop = `
INSERT OR REPLACE INTO stops (
	stop_id, stop_name, stop_lat, stop_lon
) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateStop(ctx context.Context, s Stop) error {
	_, err := q.db.ExecContext(ctx, createStop, s.ID, s.Name, s.Lat, s.Lon)
	if err != nil {
		return fmt.Errorf("error inserting stop %d: %w", s.ID, err)
	}
	return nil
}

const listStops = `
SELECT stop_id, stop_name, stop_lat, stop_lon
FROM stops
ORDER BY stop_id`

func (q *Queries) ListStops(ctx context.Context) ([]Stop, error) {
	rows, err := q.db.QueryContext(ctx, listStops)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []Stop
	for rows.Next() {
		var s Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
