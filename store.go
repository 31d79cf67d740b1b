package corpus

import (
	"context"
	stderrs "errors"
	"sort"
	"strings"
	"time"
)

// VersionInfo describes one version of a document.
type VersionInfo struct {
	Hash      Ref
	Parent    *Ref // nil for root versions
	CreatedAt time.Time
}

// Store is the versioned-object API,
// bound to one Backend, one Codec, and one store namespace.
// A single Store serves any number of independent paths.
type Store[T any] struct {
	backend Backend
	codec   Codec[T]
	storeID string
}

// NewStore binds backend, codec, and a store namespace into a Store.
func NewStore[T any](backend Backend, codec Codec[T], storeID string) *Store[T] {
	return &Store[T]{backend: backend, codec: codec, storeID: storeID}
}

func (s *Store[T]) versionPrefix(path string) string {
	return s.storeID + "/" + path + "/v/"
}

func (s *Store[T]) versionKey(path string, ref Ref) string {
	return s.versionPrefix(path) + ref.String()
}

// Put writes content as a new version of the document at path
// and returns its id: the sha256 hash of the encoded bytes.
//
// Put is idempotent: re-putting identical content under the same path
// returns the same id without creating a duplicate entry.
// The parent reference, if any, is recorded as supplied;
// its existence is not checked,
// so a write proceeds even if the parent was concurrently deleted.
func (s *Store[T]) Put(ctx context.Context, path string, content T, parent *Ref) (Ref, error) {
	data, err := s.codec.Encode(content)
	if err != nil {
		return Zero, &Error{Kind: KindInvalidContent, Path: path, Err: err}
	}

	ref := RefOf(data)

	metadata := map[string]string{
		MetaCreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if parent != nil {
		metadata[MetaParent] = parent.String()
	}

	err = s.backend.WriteBlob(ctx, s.versionKey(path, ref), data, metadata)
	if err != nil {
		return Zero, &Error{Kind: KindIO, Path: path, Version: ref.String(), Err: err}
	}
	return ref, nil
}

// Get returns the content of the version with id hash under path.
func (s *Store[T]) Get(ctx context.Context, path string, hash Ref) (T, error) {
	var zero T

	data, _, err := s.backend.ReadBlob(ctx, s.versionKey(path, hash))
	if stderrs.Is(err, ErrNotFound) {
		return zero, &Error{Kind: KindNotFound, Path: path, Version: hash.String(), Err: err}
	}
	if err != nil {
		return zero, &Error{Kind: KindIO, Path: path, Version: hash.String(), Err: err}
	}

	content, err := s.codec.Decode(data)
	if err != nil {
		return zero, &Error{Kind: KindInvalidContent, Path: path, Version: hash.String(), Err: err}
	}
	return content, nil
}

// ListVersions returns every version currently stored under path,
// newest first by creation time.
// An unused path yields an empty slice, not an error.
//
// The order reflects timestamps only.
// Which branch of a forked history is "current" is the caller's
// concern: a caller needing linear history must either keep its own
// current-version pointer or enforce single-writer discipline.
func (s *Store[T]) ListVersions(ctx context.Context, path string) ([]VersionInfo, error) {
	prefix := s.versionPrefix(path)

	var infos []VersionInfo
	err := s.backend.ListBlobs(ctx, prefix, func(b BlobInfo) error {
		hex := strings.TrimPrefix(b.Key, prefix)
		ref, err := RefFromHex(hex)
		if err != nil {
			// Not a version blob. Foreign objects under the prefix
			// are skipped, the same as unparseable filenames.
			return nil
		}

		info := VersionInfo{Hash: ref, CreatedAt: b.WrittenAt}
		if p, ok := b.Metadata[MetaParent]; ok {
			parent, err := RefFromHex(p)
			if err != nil {
				return &Error{Kind: KindInvalidContent, Path: path, Version: hex, Err: err}
			}
			info.Parent = &parent
		}
		if ts, ok := b.Metadata[MetaCreatedAt]; ok {
			if created, err := time.Parse(time.RFC3339Nano, ts); err == nil {
				info.CreatedAt = created
			}
		}
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		var cerr *Error
		if stderrs.As(err, &cerr) {
			return nil, err
		}
		return nil, &Error{Kind: KindIO, Path: path, Err: err}
	}

	// Backends do not promise to preserve write order, so sorting
	// always happens here. Ties keep the backend's order.
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Delete removes every version under path.
// Deleting a path with no versions succeeds as a no-op.
//
// Delete lists then deletes in two backend calls;
// a version written between the two may survive.
func (s *Store[T]) Delete(ctx context.Context, path string) error {
	var keys []string
	err := s.backend.ListBlobs(ctx, s.versionPrefix(path), func(b BlobInfo) error {
		keys = append(keys, b.Key)
		return nil
	})
	if err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	if len(keys) == 0 {
		return nil
	}

	err = s.backend.DeleteBlobs(ctx, keys)
	if err != nil {
		return &Error{Kind: KindIO, Path: path, Err: err}
	}
	return nil
}
