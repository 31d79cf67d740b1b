// Package lru implements a backend that acts as a read-through,
// least-recently-used cache for a nested backend.
//
// Blobs are immutable and content-addressed, so a cache entry can
// never be stale; only deletion has to invalidate.
package lru

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store"
)

var _ corpus.Backend = &Backend{}

// Backend caches up to a fixed number of blobs from a nested backend.
// Writes pass through.
type Backend struct {
	c *lru.Cache // key -> cached
	b corpus.Backend
}

type cached struct {
	data     []byte
	metadata map[string]string
}

// New produces a new Backend backed by b and caching up to size blobs.
func New(b corpus.Backend, size int) (*Backend, error) {
	c, err := lru.New(size)
	return &Backend{c: c, b: b}, err
}

func (b *Backend) WriteBlob(ctx context.Context, key string, data []byte, metadata map[string]string) error {
	err := b.b.WriteBlob(ctx, key, data, metadata)
	if err != nil {
		return err
	}
	// The nested backend keeps the first write for an existing key,
	// so the cache must too.
	b.c.ContainsOrAdd(key, cached{data: data, metadata: metadata})
	return nil
}

func (b *Backend) ReadBlob(ctx context.Context, key string) ([]byte, map[string]string, error) {
	if got, ok := b.c.Get(key); ok {
		c := got.(cached)
		return c.data, c.metadata, nil
	}

	data, metadata, err := b.b.ReadBlob(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	b.c.Add(key, cached{data: data, metadata: metadata})
	return data, metadata, nil
}

func (b *Backend) ListBlobs(ctx context.Context, prefix string, f func(corpus.BlobInfo) error) error {
	return b.b.ListBlobs(ctx, prefix, f)
}

func (b *Backend) DeleteBlobs(ctx context.Context, keys []string) error {
	err := b.b.DeleteBlobs(ctx, keys)
	if err != nil {
		return err
	}
	for _, key := range keys {
		b.c.Remove(key)
	}
	return nil
}

func init() {
	store.Register("lru", func(ctx context.Context, conf map[string]interface{}) (corpus.Backend, error) {
		size, ok := conf["size"].(int)
		if !ok {
			return nil, errors.New(`missing "size" parameter`)
		}
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
		return New(nestedBackend, size)
	})
}
