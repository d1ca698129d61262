package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"
)

// Route represents a line in the GTFS feed
type Route struct {
	ID        string `csv:"route_id"`         // route_id
	ShortName string `csv:"route_short_name"` // route_short_name
	LongName  string `csv:"route_long_name"`  // route_long_name
	Type      int    `csv:"route_type"`       // route_type
}

const createRoute = `
INSERT OR REPLACE INTO routes (
	route_id, route_short_name, route_long_name, route_type
) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateRoute(ctx context.Context, r Route) error {
	_, err := q.db.ExecContext(ctx, createRoute,
		r.ID, toNullString(r.ShortName), toNullString(r.LongName), r.Type,
	)
	if err != nil {
		return fmt.Errorf("error inserting route %s: %w", r.ID, err)
	}
	return nil
}

const listRoutes = `
SELECT route_id, route_short_name, route_long_name, route_type
FROM routes
ORDER BY route_id`

func (q *Queries) ListRoutes(ctx context.Context) ([]Route, error) {
	rows, err := q.db.QueryContext(ctx, listRoutes)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []Route
	for rows.Next() {
		var (
			r                   Route
			shortName, longName sql.NullString
		)
		if err := rows.Scan(&r.ID, &shortName, &longName, &r.Type); err != nil {
			return nil, err
		}
		r.ShortName = shortName.String
		r.LongName = longName.String
		items = append(items, r)
	}
	return items, rows.Err()
}
