package gtfsdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestData creates two different feeds for testing hash changes
func createTestData(t *testing.T) ([]byte, []byte) {
	t.Helper()

	original := buildFeedZip(t, sampleFeedFiles())

	files := sampleFeedFiles()
	files["stops.txt"] += "4,Delta,48.5,18.5\n"
	modified := buildFeedZip(t, files)

	return original, modified
}

func TestConditionalImport_InitialImport(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()
	originalData, _ := createTestData(t)

	err := client.processAndStoreGTFSDataWithSource(ctx, originalData, "test-source")
	require.NoError(t, err, "Initial import should succeed")

	metadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err, "Should be able to retrieve import metadata")

	assert.NotEmpty(t, metadata.FileHash, "File hash should be stored")
	assert.Equal(t, "test-source", metadata.FileSource, "File source should match")
	assert.Greater(t, metadata.ImportTime, int64(0), "Import time should be set")

	stops, err := client.Queries.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 3)
}

func TestConditionalImport_SkipUnchangedData(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()
	originalData, _ := createTestData(t)

	require.NoError(t, client.processAndStoreGTFSDataWithSource(ctx, originalData, "test-source"))
	initialMetadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)

	// Rows added behind the importer's back survive a skipped import
	require.NoError(t, client.Queries.CreateStop(ctx, Stop{ID: 99, Name: "Manual", Lat: 1, Lon: 1}))

	require.NoError(t, client.processAndStoreGTFSDataWithSource(ctx, originalData, "test-source"))

	finalMetadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, initialMetadata, finalMetadata, "Metadata should be unchanged")

	stops, err := client.Queries.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 4, "Import should have been skipped")
}

func TestConditionalImport_ReloadChangedData(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()
	originalData, modifiedData := createTestData(t)

	require.NoError(t, client.processAndStoreGTFSDataWithSource(ctx, originalData, "test-source"))
	initialMetadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)

	require.NoError(t, client.processAndStoreGTFSDataWithSource(ctx, modifiedData, "test-source"))

	finalMetadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, initialMetadata.FileHash, finalMetadata.FileHash, "File hash should have changed")
	assert.GreaterOrEqual(t, finalMetadata.ImportTime, initialMetadata.ImportTime)

	stops, err := client.Queries.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 4, "Changed feed should replace the stored one")
}

func TestConditionalImport_DifferentSources(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()
	originalData, _ := createTestData(t)

	require.NoError(t, client.processAndStoreGTFSDataWithSource(ctx, originalData, "source-a"))
	initialMetadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)

	require.NoError(t, client.processAndStoreGTFSDataWithSource(ctx, originalData, "source-b"))

	finalMetadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, initialMetadata.FileHash, finalMetadata.FileHash)
	assert.Equal(t, "source-b", finalMetadata.FileSource, "File source should have been updated")
}

func TestConditionalImport_FileImport(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()
	path := writeFeedFile(t)

	require.NoError(t, client.ImportFromFile(ctx, path))

	metadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, metadata.FileSource, "File source should be the file path")
}

func TestClearAllGTFSData(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()
	originalData, _ := createTestData(t)

	require.NoError(t, client.processAndStoreGTFSDataWithSource(ctx, originalData, "test-source"))

	require.NoError(t, client.clearAllGTFSData(ctx))

	counts, err := client.TableCounts()
	require.NoError(t, err)
	for _, table := range []string{"routes", "stops", "trips", "stop_times", "shapes", "calendar_dates"} {
		assert.Zero(t, counts[table], table)
	}

	metadata, err := client.Queries.GetImportMetadata(ctx)
	require.NoError(t, err, "Import metadata should still exist after clear")
	assert.NotEmpty(t, metadata.FileHash)
}
