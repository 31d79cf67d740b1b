package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/store/mem"
	"github.com/f0rbit/corpus/testutil"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	testutil.Backend(ctx, t, func() corpus.Backend {
		return New(mem.New(), zerolog.Nop())
	})
}

func TestVersioned(t *testing.T) {
	ctx := context.Background()
	testutil.Versioned(ctx, t, func() corpus.Backend {
		return New(mem.New(), zerolog.Nop())
	})
}

func TestLogOutput(t *testing.T) {
	var (
		ctx = context.Background()
		buf bytes.Buffer
		b   = New(mem.New(), zerolog.New(&buf))
	)

	if err := b.WriteBlob(ctx, "s/p/v/k", []byte(`{"n":1}`), nil); err != nil {
		t.Fatal(err)
	}
	if _, _, err := b.ReadBlob(ctx, "s/p/v/k"); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{`"op":"write_blob"`, `"op":"read_blob"`, `"key":"s/p/v/k"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
