// Package file implements a backend as a directory tree of version files,
// for local development.
//
// Each blob is stored at <root>/<key>.json as
// {"content": ..., "parent": ..., "created_at": ...},
// so a dev tree can be inspected and diffed with ordinary tools.
// Blob bytes must themselves be valid JSON;
// every codec in this module encodes to JSON.
package file

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store"
)

var _ corpus.Backend = &Backend{}

// Backend is a file-based implementation of a backend.
type Backend struct {
	root string
}

// New produces a new Backend storing data beneath root.
func New(root string) *Backend {
	return &Backend{root: root}
}

const suffix = ".json"

type envelope struct {
	Content   json.RawMessage `json:"content"`
	Parent    *string         `json:"parent"`
	CreatedAt string          `json:"created_at"`
}

func (b *Backend) filename(key string) string {
	return filepath.Join(b.root, filepath.FromSlash(key)+suffix)
}

func (b *Backend) WriteBlob(_ context.Context, key string, data []byte, metadata map[string]string) error {
	if !json.Valid(data) {
		return errors.Errorf("blob bytes for %s are not JSON", key)
	}

	env := envelope{
		Content:   data,
		CreatedAt: metadata[corpus.MetaCreatedAt],
	}
	if p, ok := metadata[corpus.MetaParent]; ok {
		env.Parent = &p
	}
	enc, err := json.Marshal(env)
	if err != nil {
		return errors.Wrapf(err, "encoding envelope for %s", key)
	}

	path := b.filename(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "ensuring path %s exists", filepath.Dir(path))
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		// Already present; the key is content-derived, so the bytes match.
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	_, err = f.Write(enc)
	return errors.Wrapf(err, "writing %s", path)
}

func (b *Backend) ReadBlob(_ context.Context, key string) ([]byte, map[string]string, error) {
	path := b.filename(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, corpus.ErrNotFound
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "decoding %s", path)
	}
	return env.Content, env.meta(), nil
}

func (b *Backend) ListBlobs(_ context.Context, prefix string, f func(corpus.BlobInfo) error) error {
	// Keys are slash-separated, so a prefix ending in "/" names a
	// directory; otherwise its parent directory bounds the walk.
	root := filepath.Join(b.root, filepath.FromSlash(prefix))
	if !strings.HasSuffix(prefix, "/") {
		root = filepath.Dir(root)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}

		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(filepath.ToSlash(rel), suffix)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		env, err := decodeEnvelope(raw)
		if err != nil {
			return errors.Wrapf(err, "decoding %s", path)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		return f(corpus.BlobInfo{
			Key:       key,
			Metadata:  env.meta(),
			WrittenAt: info.ModTime(),
		})
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (b *Backend) DeleteBlobs(_ context.Context, keys []string) error {
	var g errgroup.Group
	for _, key := range keys {
		key := key
		g.Go(func() error {
			err := os.Remove(b.filename(key))
			if err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, "removing %s", key)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Prune directories the removals emptied. A directory that still
	// holds other keys refuses removal, which ends the climb.
	dirs := make(map[string]struct{})
	for _, key := range keys {
		dirs[filepath.Dir(b.filename(key))] = struct{}{}
	}
	for dir := range dirs {
		for dir != b.root && os.Remove(dir) == nil {
			dir = filepath.Dir(dir)
		}
	}
	return nil
}

func decodeEnvelope(raw []byte) (envelope, error) {
	var env envelope
	err := json.Unmarshal(raw, &env)
	return env, err
}

func (env envelope) meta() map[string]string {
	m := make(map[string]string)
	if env.Parent != nil {
		m[corpus.MetaParent] = *env.Parent
	}
	if env.CreatedAt != "" {
		m[corpus.MetaCreatedAt] = env.CreatedAt
	}
	return m
}

func init() {
	store.Register("file", func(_ context.Context, conf map[string]interface{}) (corpus.Backend, error) {
		root, ok := conf["root"].(string)
		if !ok {
			return nil, errors.New(`missing "root" parameter`)
		}
		return New(root), nil
	})
}
