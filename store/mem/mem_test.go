package mem

import (
	"context"
	"testing"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/testutil"
)

func TestBackend(t *testing.T) {
	ctx := context.Background()
	testutil.Backend(ctx, t, func() corpus.Backend { return New() })
}

func TestVersioned(t *testing.T) {
	ctx := context.Background()
	testutil.Versioned(ctx, t, func() corpus.Backend { return New() })
}
