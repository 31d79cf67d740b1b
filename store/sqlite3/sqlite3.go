// Package sqlite3 implements a backend on Sqlite,
// a durable single-file alternative to the file backend for local use.
package sqlite3

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrs "errors"
	"time"

	"github.com/bobg/sqlutil"
	_ "github.com/mattn/go-sqlite3" // register the sqlite3 type for sql.Open
	"github.com/pkg/errors"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store"
)

var _ corpus.Backend = &Backend{}

// Backend is a Sqlite-based implementation of a backend.
type Backend struct {
	db *sql.DB
}

// Schema is the SQL that New executes.
// It creates the `corpus_blobs` table if it does not exist.
const Schema = `
CREATE TABLE IF NOT EXISTS corpus_blobs (
  key TEXT PRIMARY KEY NOT NULL,
  data BLOB NOT NULL,
  metadata TEXT NOT NULL DEFAULT '{}',
  written_at TEXT NOT NULL
);
`

// New produces a new Backend using db for storage.
// It expects to create the table `corpus_blobs`,
// or for that table already to exist with the correct schema.
// (See variable Schema.)
func New(ctx context.Context, db *sql.DB) (*Backend, error) {
	_, err := db.ExecContext(ctx, Schema)
	return &Backend{db: db}, err
}

func (b *Backend) WriteBlob(ctx context.Context, key string, data []byte, metadata map[string]string) error {
	const q = `INSERT INTO corpus_blobs (key, data, metadata, written_at) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`

	if metadata == nil {
		metadata = map[string]string{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	_, err = b.db.ExecContext(ctx, q, key, data, metaJSON, time.Now().UTC().Format(time.RFC3339Nano))
	return errors.Wrapf(err, "inserting blob %s", key)
}

func (b *Backend) ReadBlob(ctx context.Context, key string) ([]byte, map[string]string, error) {
	const q = `SELECT data, metadata FROM corpus_blobs WHERE key = $1`

	var (
		data     []byte
		metaJSON []byte
	)
	err := b.db.QueryRowContext(ctx, q, key).Scan(&data, &metaJSON)
	if stderrs.Is(err, sql.ErrNoRows) {
		return nil, nil, corpus.ErrNotFound
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "querying blob %s", key)
	}

	var metadata map[string]string
	if err := json.Unmarshal(metaJSON, &metadata); err != nil {
		return nil, nil, errors.Wrapf(err, "decoding metadata for %s", key)
	}
	return data, metadata, nil
}

func (b *Backend) ListBlobs(ctx context.Context, prefix string, f func(corpus.BlobInfo) error) error {
	const q = `SELECT key, metadata, written_at FROM corpus_blobs WHERE substr(key, 1, length($1)) = $1 ORDER BY key`

	return sqlutil.ForQueryRows(ctx, b.db, q, prefix, func(key string, metaJSON []byte, atstr string) error {
		writtenAt, err := time.Parse(time.RFC3339Nano, atstr)
		if err != nil {
			return errors.Wrapf(err, "parsing time %s", atstr)
		}

		var metadata map[string]string
		if err := json.Unmarshal(metaJSON, &metadata); err != nil {
			return errors.Wrapf(err, "decoding metadata for %s", key)
		}

		return f(corpus.BlobInfo{Key: key, Metadata: metadata, WrittenAt: writtenAt})
	})
}

func (b *Backend) DeleteBlobs(ctx context.Context, keys []string) error {
	const q = `DELETE FROM corpus_blobs WHERE key = $1`

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, q, key); err != nil {
			return errors.Wrapf(err, "deleting blob %s", key)
		}
	}
	return errors.Wrap(tx.Commit(), "committing deletes")
}

func init() {
	store.Register("sqlite3", func(ctx context.Context, conf map[string]interface{}) (corpus.Backend, error) {
		conn, ok := conf["conn"].(string)
		if !ok {
			return nil, errors.New(`missing "conn" parameter`)
		}
		db, err := sql.Open("sqlite3", conn)
		if err != nil {
			return nil, errors.Wrap(err, "opening db")
		}
		return New(ctx, db)
	})
}
