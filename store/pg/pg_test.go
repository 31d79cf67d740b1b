package pg

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/testutil"
)

const connVar = "CORPUS_PG_TESTING_CONN"

func TestBackend(t *testing.T) {
	ctx := context.Background()
	testutil.Backend(ctx, t, backendFactory(ctx, t))
}

func TestVersioned(t *testing.T) {
	ctx := context.Background()
	testutil.Versioned(ctx, t, backendFactory(ctx, t))
}

func backendFactory(ctx context.Context, t *testing.T) func() corpus.Backend {
	connstr := os.Getenv(connVar)
	if connstr == "" {
		t.Skipf("to run %s, set %s to a valid Postgresql connection string", t.Name(), connVar)
	}

	return func() corpus.Backend {
		db, err := sql.Open("postgres", connstr)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { db.Close() })

		if _, err := db.Exec(`DROP TABLE IF EXISTS corpus_blobs`); err != nil {
			t.Fatal(err)
		}

		b, err := New(ctx, db)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}
}
