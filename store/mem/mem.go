// Package mem implements an in-process backend for tests and local iteration.
package mem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store"
)

var _ corpus.Backend = &Backend{}

// Backend keeps blobs in a map guarded by a mutex. Nothing persists.
type Backend struct {
	mu    sync.Mutex
	blobs map[string]entry
}

type entry struct {
	data      []byte
	metadata  map[string]string
	writtenAt time.Time
}

func New() *Backend {
	return &Backend{blobs: make(map[string]entry)}
}

func (b *Backend) WriteBlob(_ context.Context, key string, data []byte, metadata map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.blobs[key]; ok {
		// First write wins: a rewrite of a content-derived key
		// carries identical bytes.
		return nil
	}

	b.blobs[key] = entry{
		data:      append([]byte(nil), data...),
		metadata:  cloneMeta(metadata),
		writtenAt: time.Now(),
	}
	return nil
}

func (b *Backend) ReadBlob(_ context.Context, key string) ([]byte, map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.blobs[key]
	if !ok {
		return nil, nil, corpus.ErrNotFound
	}
	return append([]byte(nil), e.data...), cloneMeta(e.metadata), nil
}

func (b *Backend) ListBlobs(_ context.Context, prefix string, f func(corpus.BlobInfo) error) error {
	b.mu.Lock()
	var infos []corpus.BlobInfo
	for key, e := range b.blobs {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		infos = append(infos, corpus.BlobInfo{
			Key:       key,
			Metadata:  cloneMeta(e.metadata),
			WrittenAt: e.writtenAt,
		})
	}
	b.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })

	for _, info := range infos {
		if err := f(info); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) DeleteBlobs(_ context.Context, keys []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, key := range keys {
		delete(b.blobs, key)
	}
	return nil
}

func cloneMeta(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func init() {
	store.Register("mem", func(context.Context, map[string]interface{}) (corpus.Backend, error) {
		return New(), nil
	})
}
