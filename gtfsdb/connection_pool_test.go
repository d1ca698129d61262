package gtfsdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"spacetime.railviz.dev/internal/appconf"
)

func TestInMemoryDatabaseUsesSingleConnection(t *testing.T) {
	client := newTestClient(t, false)

	// A second connection to :memory: would see an empty database
	stats := client.DB.Stats()
	assert.Equal(t, 1, stats.MaxOpenConnections, "in-memory databases must be pinned to one connection")
}

func TestConnectionPoolBehavior(t *testing.T) {
	client := newTestClient(t, false)
	db := client.DB

	ctx := context.Background()

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()
			var one int
			err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
			assert.NoError(t, err, "Concurrent query should succeed")
		}()
	}

	for i := 0; i < 10; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Concurrent queries timed out")
		}
	}

	// Every query must see the migrated schema
	var tables int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE name = 'stop_times'").Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 1, tables)
}

func TestConnectionPoolConfiguration(t *testing.T) {
	t.Run("file database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pool.db")
		db, err := sql.Open("sqlite", path)
		require.NoError(t, err, "Should open database")
		defer func() { _ = db.Close() }()

		configureConnectionPool(db, path)

		stats := db.Stats()
		assert.Equal(t, 25, stats.MaxOpenConnections, "MaxOpenConns should be 25")
		assert.NoError(t, db.PingContext(context.Background()))
	})

	t.Run("memory database", func(t *testing.T) {
		db, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		configureConnectionPool(db, ":memory:")

		assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	})
}

func TestFileDatabaseOutsideTestEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railviz.db")

	client, err := NewClient(NewConfig(path, appconf.Development, false))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	err = client.ImportFromFile(context.Background(), writeFeedFile(t))
	require.NoError(t, err)

	stops, err := client.Queries.ListStops(context.Background())
	require.NoError(t, err)
	assert.Len(t, stops, 3)
}
