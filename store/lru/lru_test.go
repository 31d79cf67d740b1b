package lru

import (
	"context"
	"testing"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store/mem"
	"github.com/f0rbit/corpus/testutil"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	testutil.Backend(ctx, t, factory(t))
}

func TestVersioned(t *testing.T) {
	ctx := context.Background()
	testutil.Versioned(ctx, t, factory(t))
}

func factory(t *testing.T) func() corpus.Backend {
	return func() corpus.Backend {
		b, err := New(mem.New(), 100)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}
}

// A read served from cache survives deletion performed directly on the
// nested backend.
func TestCacheHit(t *testing.T) {
	var (
		ctx    = context.Background()
		nested = mem.New()
	)
	b, err := New(nested, 10)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.WriteBlob(ctx, "s/p/v/k", []byte(`{"n":1}`), nil); err != nil {
		t.Fatal(err)
	}
	if err := nested.DeleteBlobs(ctx, []string{"s/p/v/k"}); err != nil {
		t.Fatal(err)
	}

	data, _, err := b.ReadBlob(ctx, "s/p/v/k")
	if err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
	if string(data) != `{"n":1}` {
		t.Errorf("got %s", data)
	}
}
