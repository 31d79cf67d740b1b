package corpus

import (
	"context"
	"time"
)

// Metadata keys backends persist alongside each blob.
const (
	// MetaParent is the hex id of the version this one was derived from.
	// Absent on root versions.
	MetaParent = "parent"

	// MetaCreatedAt is the write timestamp in RFC 3339 format
	// with nanoseconds.
	MetaCreatedAt = "created_at"
)

// BlobInfo describes one stored blob.
type BlobInfo struct {
	Key       string
	Metadata  map[string]string
	WrittenAt time.Time
}

// Backend is the storage substrate beneath a Store.
// Keys are opaque slash-separated strings chosen by the caller.
//
// Backends never return errors for expected conditions:
// a missing key reads as ErrNotFound,
// deleting an absent key is a no-op,
// and rewriting an existing key leaves the first write in place
// (keys are content-derived, so a rewrite carries identical bytes).
// Transport and storage faults are returned with their cause preserved.
type Backend interface {
	// WriteBlob stores data under key together with a small
	// string-keyed metadata map. The first write of a key wins;
	// writing an existing key succeeds without modifying anything.
	WriteBlob(ctx context.Context, key string, data []byte, metadata map[string]string) error

	// ReadBlob returns the data and metadata stored under key,
	// or ErrNotFound.
	ReadBlob(ctx context.Context, key string) ([]byte, map[string]string, error)

	// ListBlobs calls f for each blob whose key begins with prefix.
	// The calls reflect at least the set of blobs known at the moment
	// ListBlobs was called; it is unspecified whether concurrent
	// changes are reflected. Order is backend-dependent.
	// If f returns an error, ListBlobs exits with that error.
	ListBlobs(ctx context.Context, prefix string, f func(BlobInfo) error) error

	// DeleteBlobs removes the given keys. Keys that are already
	// absent are skipped without error.
	DeleteBlobs(ctx context.Context, keys []string) error
}
