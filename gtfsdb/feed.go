package gtfsdb

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/gocarina/gocsv"
)

// ErrMissingFeedFile is returned when a required table is absent from the archive.
var ErrMissingFeedFile = errors.New("gtfs archive is missing a required file")

// Feed holds the decoded tables of a GTFS archive that the railway model uses.
type Feed struct {
	Routes        []Route
	Stops         []Stop
	Trips         []Trip
	StopTimes     []StopTime
	Shapes        []Shape
	CalendarDates []CalendarDate
}

type feedFile struct {
	name     string
	required bool
	dest     interface{}
}

// DecodeFeed reads the CSV tables of a zipped GTFS feed.
func DecodeFeed(b []byte) (*Feed, error) {
	archive, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("error opening gtfs archive: %w", err)
	}

	feed := &Feed{}
	files := []feedFile{
		{"routes.txt", false, &feed.Routes},
		{"stops.txt", true, &feed.Stops},
		{"trips.txt", true, &feed.Trips},
		{"stop_times.txt", true, &feed.StopTimes},
		{"shapes.txt", false, &feed.Shapes},
		{"calendar_dates.txt", false, &feed.CalendarDates},
	}

	byName := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		// some exporters nest the tables inside a folder
		byName[path.Base(f.Name)] = f
	}

	for _, ff := range files {
		zf, ok := byName[ff.name]
		if !ok {
			if ff.required {
				return nil, fmt.Errorf("%w: %s", ErrMissingFeedFile, ff.name)
			}
			continue
		}
		if err := decodeFeedFile(zf, ff.dest); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", ff.name, err)
		}
	}

	return feed, nil
}

func decodeFeedFile(zf *zip.File, dest interface{}) (err error) {
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); err == nil {
			err = cerr
		}
	}()

	// Allow records with missing trailing columns
	r := csv.NewReader(skipBOM(rc))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	return gocsv.UnmarshalCSV(r, dest)
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}
	return br
}
