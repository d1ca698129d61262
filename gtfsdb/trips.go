package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"
)

// Trip represents a single scheduled train run in the GTFS feed
type Trip struct {
	ID          int    `csv:"trip_id"`         // trip_id
	RouteID     string `csv:"route_id"`        // route_id
	ServiceID   int    `csv:"service_id"`      // service_id
	Headsign    string `csv:"trip_headsign"`   // trip_headsign
	ShortName   string `csv:"trip_short_name"` // trip_short_name
	DirectionID int    `csv:"direction_id"`    // direction_id
	ShapeID     int    `csv:"shape_id"`        // shape_id

	// RouteName is the route's long name, filled in by ListTrips.
	RouteName string `csv:"-"`
}

const createTrip = `
INSERT OR REPLACE INTO trips (
	trip_id, route_id, service_id, trip_headsign, trip_short_name,
	direction_id, shape_id
) VALUES (?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateTrip(ctx context.Context, t Trip) error {
	_, err := q.db.ExecContext(ctx, createTrip,
		t.ID, t.RouteID, t.ServiceID, toNullString(t.Headsign), toNullString(t.ShortName),
		t.DirectionID, toNullInt64(int64(t.ShapeID)),
	)
	if err != nil {
		return fmt.Errorf("error inserting trip %d: %w", t.ID, err)
	}
	return nil
}

const listTrips = `
SELECT
	trips.trip_id, trips.route_id, trips.service_id, trips.trip_headsign,
	trips.trip_short_name, trips.direction_id, trips.shape_id, routes.route_long_name
FROM trips
LEFT JOIN routes ON routes.route_id = trips.route_id
ORDER BY trips.trip_id`

// ListTrips returns every trip joined with its route's long name.
func (q *Queries) ListTrips(ctx context.Context) ([]Trip, error) {
	rows, err := q.db.QueryContext(ctx, listTrips)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []Trip
	for rows.Next() {
		var (
			t                             Trip
			headsign, shortName, longName sql.NullString
			direction, shape              sql.NullInt64
		)
		if err := rows.Scan(
			&t.ID, &t.RouteID, &t.ServiceID, &headsign,
			&shortName, &direction, &shape, &longName,
		); err != nil {
			return nil, err
		}
		t.Headsign = headsign.String
		t.ShortName = shortName.String
		t.DirectionID = int(direction.Int64)
		t.ShapeID = int(shape.Int64)
		t.RouteName = longName.String
		items = append(items, t)
	}
	return items, rows.Err()
}
