package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"
)

// StopTime is a timetabled call of a trip at a stop. Times are kept as the
// raw feed strings; empty or short values mean the time is unknown.
type StopTime struct {
	TripID        int    `csv:"trip_id"`        // trip_id
	StopID        int    `csv:"stop_id"`        // stop_id
	StopSequence  int    `csv:"stop_sequence"`  // stop_sequence
	ArrivalTime   string `csv:"arrival_time"`   // arrival_time (HH:MM:SS)
	DepartureTime string `csv:"departure_time"` // departure_time (HH:MM:SS)
}

const createStopTime = `
INSERT OR REPLACE INTO stop_times (
	trip_id, stop_id, stop_sequence, arrival_time, departure_time
) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateStopTime(ctx context.Context, st StopTime) error {
	_, err := q.db.ExecContext(ctx, createStopTime,
		st.TripID, st.StopID, st.StopSequence,
		toNullString(st.ArrivalTime), toNullString(st.DepartureTime),
	)
	if err != nil {
		return fmt.Errorf("error inserting stop time %d/%d: %w", st.TripID, st.StopSequence, err)
	}
	return nil
}

const listStopTimes = `
SELECT trip_id, stop_id, stop_sequence, arrival_time, departure_time
FROM stop_times
ORDER BY trip_id, stop_sequence`

func (q *Queries) ListStopTimes(ctx context.Context) ([]StopTime, error) {
	rows, err := q.db.QueryContext(ctx, listStopTimes)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var items []StopTime
	for rows.Next() {
		var (
			st                 StopTime
			arrival, departure sql.NullString
		)
		if err := rows.Scan(&st.TripID, &st.StopID, &st.StopSequence, &arrival, &departure); err != nil {
			return nil, err
		}
		st.ArrivalTime = arrival.String
		st.DepartureTime = departure.String
		items = append(items, st)
	}
	return items, rows.Err()
}
