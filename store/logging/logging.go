// Package logging implements a backend that delegates everything to a
// nested backend, logging operations as they happen.
package logging

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store"
)

var _ corpus.Backend = &Backend{}

type Backend struct {
	b   corpus.Backend
	log zerolog.Logger
}

func New(b corpus.Backend, log zerolog.Logger) *Backend {
	return &Backend{b: b, log: log}
}

func (b *Backend) WriteBlob(ctx context.Context, key string, data []byte, metadata map[string]string) error {
	start := time.Now()
	err := b.b.WriteBlob(ctx, key, data, metadata)
	b.event(err).Str("op", "write_blob").Str("key", key).Int("bytes", len(data)).Dur("elapsed", time.Since(start)).Send()
	return err
}

func (b *Backend) ReadBlob(ctx context.Context, key string) ([]byte, map[string]string, error) {
	start := time.Now()
	data, metadata, err := b.b.ReadBlob(ctx, key)
	b.event(err).Str("op", "read_blob").Str("key", key).Dur("elapsed", time.Since(start)).Send()
	return data, metadata, err
}

func (b *Backend) ListBlobs(ctx context.Context, prefix string, f func(corpus.BlobInfo) error) error {
	var (
		start = time.Now()
		n     int
	)
	err := b.b.ListBlobs(ctx, prefix, func(info corpus.BlobInfo) error {
		n++
		return f(info)
	})
	b.event(err).Str("op", "list_blobs").Str("prefix", prefix).Int("blobs", n).Dur("elapsed", time.Since(start)).Send()
	return err
}

func (b *Backend) DeleteBlobs(ctx context.Context, keys []string) error {
	start := time.Now()
	err := b.b.DeleteBlobs(ctx, keys)
	b.event(err).Str("op", "delete_blobs").Int("keys", len(keys)).Dur("elapsed", time.Since(start)).Send()
	return err
}

// Expected conditions (ErrNotFound) log at debug with the rest;
// only faults log at error level.
func (b *Backend) event(err error) *zerolog.Event {
	if err != nil && !errors.Is(err, corpus.ErrNotFound) {
		return b.log.Error().Err(err)
	}
	return b.log.Debug().Err(err)
}

func init() {
	store.Register("logging", func(ctx context.Context, conf map[string]interface{}) (corpus.Backend, error) {
		nested, ok := conf["nested"].(map[string]interface{})
		if !ok {
			return nil, errors.New(`missing "nested" parameter`)
		}
		nestedType, ok := nested["type"].(string)
		if !ok {
			return nil, errors.New(`"nested" parameter missing "type"`)
		}
		nestedBackend, err := store.Create(ctx, nestedType, nested)
		if err != nil {
			return nil, errors.Wrap(err, "creating nested backend")
		}
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		return New(nestedBackend, log), nil
	})
}
