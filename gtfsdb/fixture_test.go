package gtfsdb

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"spacetime.railviz.dev/internal/appconf"
)

// sampleFeedFiles is a two-trip feed: trip 1 calls at every station, trip 2
// passes station 2 without a timetabled stop.
func sampleFeedFiles() map[string]string {
	return map[string]string{
		"routes.txt": "route_id,route_short_name,route_long_name,route_type\n" +
			"R1,,Bratislava - Kosice,2\n",
		"stops.txt": "\ufeffstop_id,stop_name,stop_lat,stop_lon\n" +
			"1,Alpha,48.0,17.0\n" +
			"2,Beta,48.0,17.5\n" +
			"3,Gamma,48.0,18.0\n",
		"trips.txt": "route_id,service_id,trip_id,trip_headsign,trip_short_name,direction_id,shape_id\n" +
			"R1,10,1,Gamma,Os 1001,0,100\n" +
			"R1,20,2,Gamma,R 603,0,100\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"1,08:00:00,08:00:00,1,1\n" +
			"1,08:10:00,08:11:00,2,2\n" +
			"1,08:20:00,08:20:00,3,3\n" +
			"2,09:00:00,09:00:00,1,1\n" +
			"2,09:20:00,09:20:00,3,2\n",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"100,48.0,17.0,1\n" +
			"100,48.0,17.5,2\n" +
			"100,48.0,18.0,3\n",
		"calendar_dates.txt": "service_id,date,exception_type\n" +
			"10,20241231,1\n" +
			"20,20241231,1\n" +
			"20,20250101,2\n",
	}
}

func buildFeedZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func newTestClient(t *testing.T, verbose bool) *Client {
	t.Helper()

	client, err := NewClient(Config{
		DBPath:  ":memory:",
		Env:     appconf.Test,
		verbose: verbose,
	})
	require.NoError(t, err, "NewClient should succeed")
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func writeFeedFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.zip")
	require.NoError(t, os.WriteFile(path, buildFeedZip(t, sampleFeedFiles()), 0o600))
	return path
}
