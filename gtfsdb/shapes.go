package gtfsdb

import (
	"context"
	"fmt"
)

// Shape is one point of a trip's physical path
type Shape struct {
	ShapeID  int     `csv:"shape_id"`          // shape_id
	Sequence int     `csv:"shape_pt_sequence"` // shape_pt_sequence
	Lat      float64 `csv:"shape_pt_lat"`      // shape_pt_lat
	Lon      float64 `csv:"shape_pt_lon"`      // shape_pt_lon
}

const createShape = `
INSERT OR REPLACE INTO shapes (
	shape_id, shape_pt_sequence, shape_pt_lat, shape_pt_lon
) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateShape(ctx context.Context, s Shape) error {
	_, err := q.db.ExecContext(ctx, createShape, s.ShapeID, s.Sequence, s.Lat, s.Lon)
	if err != nil {
		return fmt.Errorf("error inserting shape point %d/%d: %w", s.ShapeID, s.Sequence, err)
	}
	return nil
}

const listShapes = `
SELECT shape_id, shape_pt_sequence, shape_pt_lat, shape_pt_lon
FROM shapes
ORDER BY shape_id, shape_pt_sequence`

// ListShapes returns every shape point grouped by shape and in path order.
func (q *Queries) ListShapes(ctx context.Context) ([]Shape, error) {
	rows, err := q.db.QueryContext(ctx, listShapes)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []Shape
	for rows.Next() {
		var s Shape
		if err := rows.Scan(&s.ShapeID, &s.Sequence, &s.Lat, &s.Lon); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
