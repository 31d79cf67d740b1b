package store_test

import (
	"context"
	"testing"

	"github.com/f0rbit/corpus/store"
	_ "github.com/f0rbit/corpus/store/mem"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	b, err := store.Create(ctx, "mem", nil)
	if err != nil {
		t.Fatal(err)
	}
	if b == nil {
		t.Fatal("got nil backend")
	}

	if _, err := store.Create(ctx, "no-such-backend", nil); err == nil {
		t.Fatal("expected error for unregistered key")
	}
}
