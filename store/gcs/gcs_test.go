package gcs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"testing"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/testutil"
)

const (
	credsVar = "CORPUS_GCS_TESTING_CREDS"
	projVar  = "CORPUS_GCS_TESTING_PROJECT"
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
		creds     = os.Getenv(credsVar)
		projectID = os.Getenv(projVar)
	)
	if creds == "" || projectID == "" {
		t.Skipf("to run %s, set %s to the name of a credentials file and %s to a project ID", t.Name(), credsVar, projVar)
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsFile(creds))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })

	return func() corpus.Backend {
		var suffix [8]byte
		if _, err := rand.Read(suffix[:]); err != nil {
			t.Fatal(err)
		}
		name := "corpus-test-" + hex.EncodeToString(suffix[:])

		bucket := client.Bucket(name)
		if err := bucket.Create(ctx, projectID, nil); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			it := bucket.Objects(ctx, nil)
			for {
				attrs, err := it.Next()
				if err != nil {
					break
				}
				bucket.Object(attrs.Name).Delete(ctx)
			}
			bucket.Delete(ctx)
		})

		return New(bucket)
	}
}
