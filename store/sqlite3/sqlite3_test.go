package sqlite3

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/testutil"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	testutil.Backend(ctx, t, backendFactory(ctx, t))
}

func TestVersioned(t *testing.T) {
	ctx := context.Background()
	testutil.Versioned(ctx, t, backendFactory(ctx, t))
}

func backendFactory(ctx context.Context, t *testing.T) func() corpus.Backend {
	var (
		dir = t.TempDir()
		n   int
	)
	return func() corpus.Backend {
		n++
		db, err := sql.Open("sqlite3", filepath.Join(dir, fmt.Sprintf("corpus%d.db", n)))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { db.Close() })

		b, err := New(ctx, db)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}
}
