package gtfsdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"spacetime.railviz.dev/internal/appconf"
)

func TestNewClient_InvalidConfigHandling(t *testing.T) {
	// test env with file DB
	config := Config{
		DBPath:  "/tmp/invalid_test_db.sqlite",
		Env:     appconf.Test,
		verbose: false,
	}

	client, err := NewClient(config)
	assert.Error(t, err, "NewClient should return error for invalid test config")
	assert.Nil(t, client, "Client should be nil when creation fails")
	assert.Contains(t, err.Error(), "test database must use in-memory storage", "Error should mention in-memory requirement")
}

func TestNewClient_ValidConfig(t *testing.T) {
	client := newTestClient(t, false)

	assert.NotNil(t, client.DB, "Database should be initialized")
	assert.NotNil(t, client.Queries, "Queries should be initialized")
}

func TestTableCounts_ErrorHandling(t *testing.T) {
	client := newTestClient(t, false)

	counts, err := client.TableCounts()
	require.NoError(t, err, "TableCounts should succeed with valid database")
	assert.Contains(t, counts, "stop_times")
	assert.Contains(t, counts, "calendar_dates")
	assert.Equal(t, 0, counts["trips"])
}

func TestProcessAndStoreGTFSData_ErrorHandling(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()

	err := client.processAndStoreGTFSDataWithSource(ctx, []byte("invalid gtfs data"), "test-source")
	assert.Error(t, err, "invalid data should be rejected")

	err = client.processAndStoreGTFSDataWithSource(ctx, []byte{}, "test-source")
	assert.Error(t, err, "empty data should be rejected")

	t.Run("missing required table", func(t *testing.T) {
		files := sampleFeedFiles()
		delete(files, "stop_times.txt")

		err := client.processAndStoreGTFSDataWithSource(ctx, buildFeedZip(t, files), "test-source")
		assert.ErrorIs(t, err, ErrMissingFeedFile)
	})

	t.Run("malformed number", func(t *testing.T) {
		files := sampleFeedFiles()
		files["stops.txt"] = "stop_id,stop_name,stop_lat,stop_lon\n1,Alpha,north,17.0\n"

		err := client.processAndStoreGTFSDataWithSource(ctx, buildFeedZip(t, files), "test-source")
		assert.ErrorContains(t, err, "stops.txt")
	})

	_, err = client.Queries.GetImportMetadata(ctx)
	assert.Error(t, err, "failed imports must not record metadata")
}

func TestImportFromFile_ErrorHandling(t *testing.T) {
	client := newTestClient(t, false)

	err := client.ImportFromFile(context.Background(), "/nonexistent/file.zip")
	assert.Error(t, err, "ImportFromFile should return error for non-existent file")
}

func TestDownloadAndStore(t *testing.T) {
	feed := buildFeedZip(t, sampleFeedFiles())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(feed)
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("invalid url", func(t *testing.T) {
		client := newTestClient(t, false)
		assert.Error(t, client.DownloadAndStore(ctx, "invalid-url"))
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, false)
		err := client.DownloadAndStore(ctx, server.URL+"/missing.zip")
		assert.ErrorContains(t, err, "unexpected status")
	})

	t.Run("stores downloaded feed", func(t *testing.T) {
		client := newTestClient(t, false)
		require.NoError(t, client.DownloadAndStore(ctx, server.URL+"/feed.zip"))

		trips, err := client.Queries.ListTrips(ctx)
		require.NoError(t, err)
		assert.Len(t, trips, 2)

		metadata, err := client.Queries.GetImportMetadata(ctx)
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/feed.zip", metadata.FileSource)
	})
}
