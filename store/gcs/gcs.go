// Package gcs implements the production backend on Google Cloud Storage.
//
// A production deployment pairs a structured metadata store with a blob
// bucket. The version metadata (parent, created_at) rides on the blob
// write as custom attributes rather than going to the metadata store as
// a separate record: a single write either succeeds with both content
// and metadata or fails entirely, with no partial state to reconcile.
package gcs

import (
	"context"
	stderrs "errors"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store"
)

var _ corpus.Backend = &Backend{}

// Backend is a Google Cloud Storage-based implementation of a backend.
type Backend struct {
	bucket *storage.BucketHandle
}

// New produces a new Backend writing to bucket.
func New(bucket *storage.BucketHandle) *Backend {
	return &Backend{bucket: bucket}
}

func (b *Backend) WriteBlob(ctx context.Context, key string, data []byte, metadata map[string]string) error {
	obj := b.bucket.Object(key).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	w.Metadata = metadata

	err := func() error {
		if _, err := w.Write(data); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}()

	var e *googleapi.Error
	if stderrs.As(err, &e) && e.Code == http.StatusPreconditionFailed {
		// Already present; the key is content-derived, so the bytes match.
		return nil
	}
	return errors.Wrapf(err, "writing object %s", key)
}

func (b *Backend) ReadBlob(ctx context.Context, key string) ([]byte, map[string]string, error) {
	obj := b.bucket.Object(key)

	attrs, err := obj.Attrs(ctx)
	if stderrs.Is(err, storage.ErrObjectNotExist) {
		return nil, nil, corpus.ErrNotFound
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "getting object attrs for %s", key)
	}

	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading info of object %s", key)
	}
	defer r.Close()

	data := make([]byte, r.Attrs.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, nil, errors.Wrapf(err, "reading contents of object %s", key)
	}
	return data, attrs.Metadata, nil
}

func (b *Backend) ListBlobs(ctx context.Context, prefix string, f func(corpus.BlobInfo) error) error {
	iter := b.bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := iter.Next()
		if stderrs.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "iterating over objects with prefix %s", prefix)
		}

		err = f(corpus.BlobInfo{
			Key:       attrs.Name,
			Metadata:  attrs.Metadata,
			WrittenAt: attrs.Created,
		})
		if err != nil {
			return err
		}
	}
}

func (b *Backend) DeleteBlobs(ctx context.Context, keys []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			err := b.bucket.Object(key).Delete(ctx)
			if stderrs.Is(err, storage.ErrObjectNotExist) {
				return nil
			}
			return errors.Wrapf(err, "deleting object %s", key)
		})
	}
	return g.Wait()
}

func init() {
	store.Register("gcs", func(ctx context.Context, conf map[string]interface{}) (corpus.Backend, error) {
		creds, ok := conf["creds"].(string)
		if !ok {
			return nil, errors.New(`missing "creds" parameter`)
		}
		bucketName, ok := conf["bucket"].(string)
		if !ok {
			return nil, errors.New(`missing "bucket" parameter`)
		}
		c, err := storage.NewClient(ctx, option.WithCredentialsFile(creds))
		if err != nil {
			return nil, errors.Wrap(err, "creating cloud storage client")
		}
		return New(c.Bucket(bucketName)), nil
	})
}
