package gtfsdb

import (
	"context"
	"time"
)

// ImportMetadata records the last feed that was imported
type ImportMetadata struct {
	FileHash   string // sha256 of the feed archive
	FileSource string // url or path the feed came from
	ImportTime int64  // unix seconds
}

const getImportMetadata = `
SELECT file_hash, file_source, import_time
FROM import_metadata
WHERE id = 1`

func (q *Queries) GetImportMetadata(ctx context.Context) (ImportMetadata, error) {
	var m ImportMetadata
	err := q.db.QueryRowContext(ctx, getImportMetadata).Scan(&m.FileHash, &m.FileSource, &m.ImportTime)
	return m, err
}

const upsertImportMetadata = `
INSERT INTO import_metadata (id, file_hash, file_source, import_time)
VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	file_hash = excluded.file_hash,
	file_source = excluded.file_source,
	import_time = excluded.import_time`

func (q *Queries) UpsertImportMetadata(ctx context.Context, hash, source string) error {
	_, err := q.db.ExecContext(ctx, upsertImportMetadata, hash, source, time.Now().Unix())
	return err
}
