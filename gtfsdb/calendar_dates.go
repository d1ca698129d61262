package gtfsdb

import (
	"context"
	"fmt"
)

// Exception types of calendar_dates.txt
const (
	ExceptionAdded   = 1
	ExceptionRemoved = 2
)

// CalendarDate is a service exception for a single date
type CalendarDate struct {
	ServiceID     int `csv:"service_id"`     // service_id
	Date          int `csv:"date"`           // date (YYYYMMDD)
	ExceptionType int `csv:"exception_type"` // exception_type
}

const createCalendarDate = `
INSERT OR REPLACE INTO calendar_dates (
	service_id, date, exception_type
) VALUES (?, ?, ?)`

func (q *Queries) CreateCalendarDate(ctx context.Context, cd CalendarDate) error {
	_, err := q.db.ExecContext(ctx, createCalendarDate, cd.ServiceID, cd.Date, cd.ExceptionType)
	if err != nil {
		return fmt.Errorf("error inserting calendar date %d/%d: %w", cd.ServiceID, cd.Date, err)
	}
	return nil
}

const listTripIDsRunningOn = `
SELECT trips.trip_id
FROM calendar_dates
JOIN trips ON calendar_dates.service_id = trips.service_id
WHERE calendar_dates.date = ? AND calendar_dates.exception_type = ?
ORDER BY trips.trip_id`

// ListTripIDsRunningOn returns the ids of trips whose service has an added
// exception on date (YYYYMMDD). Base weekly calendars are not consulted.
func (q *Queries) ListTripIDsRunningOn(ctx context.Context, date int) ([]int, error) {
	rows, err := q.db.QueryContext(ctx, listTripIDsRunningOn, date, ExceptionAdded)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const tripRunsOn = `
SELECT EXISTS (
	SELECT 1
	FROM calendar_dates
	JOIN trips ON calendar_dates.service_id = trips.service_id
	WHERE trips.trip_id = ? AND calendar_dates.date = ? AND calendar_dates.exception_type = ?
)`

func (q *Queries) TripRunsOn(ctx context.Context, tripID, date int) (bool, error) {
	var runs bool
	err := q.db.QueryRowContext(ctx, tripRunsOn, tripID, date, ExceptionAdded).Scan(&runs)
	return runs, err
}
