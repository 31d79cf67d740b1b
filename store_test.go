package corpus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/post"
	"github.com/f0rbit/corpus/store/mem"
)

// The full consumer scenario: create a post, revise it with a parent
// link, and read the history back.
func TestPostLifecycle(t *testing.T) {
	var (
		ctx  = context.Background()
		s    = corpus.NewStore[post.Content](mem.New(), post.Codec{}, "posts")
		path = "posts/7/42"
	)

	h1, err := s.Put(ctx, path, post.Content{Title: "V1", Body: "First", Format: post.Markdown}, nil)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)

	h2, err := s.Put(ctx, path, post.Content{Title: "V2", Body: "Second", Format: post.Markdown}, &h1)
	if err != nil {
		t.Fatal(err)
	}
	if h2 == h1 {
		t.Fatal("revised content produced the same hash")
	}

	infos, err := s.ListVersions(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d versions, want 2", len(infos))
	}
	if infos[0].Hash != h2 {
		t.Errorf("newest version = %s, want %s", infos[0].Hash, h2)
	}
	if infos[0].Parent == nil || *infos[0].Parent != h1 {
		t.Errorf("newest parent = %v, want %s", infos[0].Parent, h1)
	}
	if infos[1].Hash != h1 || infos[1].Parent != nil {
		t.Errorf("oldest version = %s (parent %v), want %s with no parent", infos[1].Hash, infos[1].Parent, h1)
	}

	got, err := s.Get(ctx, path, h1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "V1" {
		t.Errorf("got title %q, want %q", got.Title, "V1")
	}
}

func TestPutInvalidContent(t *testing.T) {
	var (
		ctx = context.Background()
		s   = corpus.NewStore[post.Content](mem.New(), post.Codec{}, "posts")
	)

	_, err := s.Put(ctx, "posts/7/42", post.Content{Body: "no title", Format: post.Markdown}, nil)
	if !errors.Is(err, corpus.ErrInvalidContent) {
		t.Fatalf("got %v, want ErrInvalidContent", err)
	}

	var cerr *corpus.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("got %T, want *corpus.Error", err)
	}
	if cerr.Kind != corpus.KindInvalidContent {
		t.Errorf("got kind %s, want %s", cerr.Kind, corpus.KindInvalidContent)
	}
}

// A blob written by an incompatible codec reads back as invalid
// content, not as a decode panic or a silent zero value.
func TestGetIncompatibleContent(t *testing.T) {
	var (
		ctx     = context.Background()
		backend = mem.New()
		s       = corpus.NewStore[post.Content](backend, post.Codec{}, "posts")
	)

	data := []byte(`{"surprise":"fields"}`)
	ref := corpus.RefOf(data)
	if err := backend.WriteBlob(ctx, "posts/posts/7/42/v/"+ref.String(), data, nil); err != nil {
		t.Fatal(err)
	}

	_, err := s.Get(ctx, "posts/7/42", ref)
	if !errors.Is(err, corpus.ErrInvalidContent) {
		t.Fatalf("got %v, want ErrInvalidContent", err)
	}
}
