package testutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/f0rbit/corpus"
)

// Backend checks an implementation against the raw Backend contract.
// The factory must return an empty backend each time it is called.
// Blob bytes are JSON because the file backend requires it.
func Backend(ctx context.Context, t *testing.T, factory func() corpus.Backend) {
	t.Run("WriteRead", func(t *testing.T) {
		b := factory()

		var (
			data = []byte(`{"n":1}`)
			meta = map[string]string{
				corpus.MetaParent:    "aa11",
				corpus.MetaCreatedAt: "2024-03-01T10:00:00.000000001Z",
			}
		)
		if err := b.WriteBlob(ctx, "s/p/v/k1", data, meta); err != nil {
			t.Fatal(err)
		}

		got, gotMeta, err := b.ReadBlob(ctx, "s/p/v/k1")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(data, got); diff != "" {
			t.Errorf("data mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(meta, gotMeta); diff != "" {
			t.Errorf("metadata mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("FirstWriteWins", func(t *testing.T) {
		b := factory()

		meta1 := map[string]string{corpus.MetaCreatedAt: "2024-03-01T10:00:00Z"}
		meta2 := map[string]string{corpus.MetaCreatedAt: "2024-03-01T11:00:00Z"}

		if err := b.WriteBlob(ctx, "s/p/v/k1", []byte(`{"n":1}`), meta1); err != nil {
			t.Fatal(err)
		}
		if err := b.WriteBlob(ctx, "s/p/v/k1", []byte(`{"n":1}`), meta2); err != nil {
			t.Fatal(err)
		}

		_, gotMeta, err := b.ReadBlob(ctx, "s/p/v/k1")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(meta1, gotMeta); diff != "" {
			t.Errorf("metadata mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ReadMissing", func(t *testing.T) {
		b := factory()

		_, _, err := b.ReadBlob(ctx, "s/p/v/missing")
		if !errors.Is(err, corpus.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("ListPrefix", func(t *testing.T) {
		b := factory()

		keys := []string{"s/a/v/k1", "s/a/v/k2", "s/b/v/k1"}
		for i, key := range keys {
			data := []byte(fmt.Sprintf(`{"n":%d}`, i))
			if err := b.WriteBlob(ctx, key, data, map[string]string{corpus.MetaCreatedAt: "2024-03-01T10:00:00Z"}); err != nil {
				t.Fatal(err)
			}
		}

		var got []string
		err := b.ListBlobs(ctx, "s/a/v/", func(info corpus.BlobInfo) error {
			got = append(got, info.Key)
			if info.Metadata[corpus.MetaCreatedAt] == "" {
				t.Errorf("blob %s listed without created_at metadata", info.Key)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}

		want := map[string]bool{"s/a/v/k1": true, "s/a/v/k2": true}
		if len(got) != len(want) {
			t.Fatalf("got %d blobs %v, want %d", len(got), got, len(want))
		}
		for _, key := range got {
			if !want[key] {
				t.Errorf("unexpected key %s", key)
			}
		}
	})

	t.Run("ListEmptyPrefix", func(t *testing.T) {
		b := factory()

		err := b.ListBlobs(ctx, "s/unused/v/", func(info corpus.BlobInfo) error {
			t.Errorf("unexpected blob %s", info.Key)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := factory()

		if err := b.WriteBlob(ctx, "s/p/v/k1", []byte(`{"n":1}`), nil); err != nil {
			t.Fatal(err)
		}
		if err := b.WriteBlob(ctx, "s/p/v/k2", []byte(`{"n":2}`), nil); err != nil {
			t.Fatal(err)
		}

		// One present key, one absent: the absent one must not fail the call.
		if err := b.DeleteBlobs(ctx, []string{"s/p/v/k1", "s/p/v/gone"}); err != nil {
			t.Fatal(err)
		}

		if _, _, err := b.ReadBlob(ctx, "s/p/v/k1"); !errors.Is(err, corpus.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
		if _, _, err := b.ReadBlob(ctx, "s/p/v/k2"); err != nil {
			t.Fatalf("surviving blob unreadable: %v", err)
		}
	})
}
