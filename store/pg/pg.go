// Package pg implements a backend on Postgresql,
// for deployments that colocate version blobs with the consumer's
// relational tables.
package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrs "errors"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store"
)

var _ corpus.Backend = &Backend{}

// Backend is a Postgresql-based implementation of a backend.
type Backend struct {
	db *sql.DB
}

// Schema is the SQL that New executes.
// It creates the `corpus_blobs` table if it does not exist.
// (If it does exist, it must have the columns and constraints
// described here.)
const Schema = `
CREATE TABLE IF NOT EXISTS corpus_blobs (
  key TEXT PRIMARY KEY NOT NULL,
  data BYTEA NOT NULL,
  metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
  written_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
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
	const q = `INSERT INTO corpus_blobs (key, data, metadata) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`

	if metadata == nil {
		metadata = map[string]string{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	_, err = b.db.ExecContext(ctx, q, key, data, metaJSON)
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
	const q = `SELECT key, metadata, written_at FROM corpus_blobs WHERE left(key, length($1)) = $1 ORDER BY key`

	rows, err := b.db.QueryContext(ctx, q, prefix)
	if err != nil {
		return errors.Wrapf(err, "querying blobs with prefix %s", prefix)
	}
	defer rows.Close()

	for rows.Next() {
		var info corpus.BlobInfo
		var metaJSON []byte
		if err := rows.Scan(&info.Key, &metaJSON, &info.WrittenAt); err != nil {
			return errors.Wrap(err, "scanning query result")
		}
		if err := json.Unmarshal(metaJSON, &info.Metadata); err != nil {
			return errors.Wrapf(err, "decoding metadata for %s", info.Key)
		}
		if err := f(info); err != nil {
			return err
		}
	}
	return errors.Wrap(rows.Err(), "iterating over result rows")
}

func (b *Backend) DeleteBlobs(ctx context.Context, keys []string) error {
	const q = `DELETE FROM corpus_blobs WHERE key = ANY($1)`

	_, err := b.db.ExecContext(ctx, q, pq.Array(keys))
	return errors.Wrap(err, "deleting blobs")
}

func init() {
	store.Register("pg", func(ctx context.Context, conf map[string]interface{}) (corpus.Backend, error) {
		conn, ok := conf["conn"].(string)
		if !ok {
			return nil, errors.New(`missing "conn" parameter`)
		}
		db, err := sql.Open("postgres", conn)
		if err != nil {
			return nil, errors.Wrap(err, "opening db")
		}
		return New(ctx, db)
	})
}
