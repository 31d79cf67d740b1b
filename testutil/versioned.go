package testutil

import (
	"context"
	"errors"
	"testing"
	"testing/quick"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/f0rbit/corpus"
)

// Versioned checks the versioned Store semantics on top of a Backend
// implementation. The factory must return an empty backend each time
// it is called.
func Versioned(ctx context.Context, t *testing.T, factory func() corpus.Backend) {
	newStore := func() *corpus.Store[Note] {
		return corpus.NewStore[Note](factory(), NoteCodec{}, "notes")
	}

	t.Run("RoundTrip", func(t *testing.T) {
		s := newStore()

		f := func(title, body string) bool {
			note := Note{Title: "t" + title, Body: body}

			ref, err := s.Put(ctx, "p/1", note, nil)
			if err != nil {
				t.Fatal(err)
			}
			got, err := s.Get(ctx, "p/1", ref)
			if err != nil {
				t.Fatal(err)
			}
			return cmp.Equal(note, got)
		}
		if err := quick.Check(f, nil); err != nil {
			t.Error(err)
		}
	})

	t.Run("IdempotentPut", func(t *testing.T) {
		s := newStore()

		note := Note{Title: "once", Body: "body"}
		ref1, err := s.Put(ctx, "p/1", note, nil)
		if err != nil {
			t.Fatal(err)
		}
		ref2, err := s.Put(ctx, "p/1", note, nil)
		if err != nil {
			t.Fatal(err)
		}
		if ref1 != ref2 {
			t.Fatalf("got distinct refs %s and %s for identical content", ref1, ref2)
		}

		infos, err := s.ListVersions(ctx, "p/1")
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) != 1 {
			t.Fatalf("got %d versions, want 1", len(infos))
		}
	})

	t.Run("Distinctness", func(t *testing.T) {
		s := newStore()

		ref1, err := s.Put(ctx, "p/1", Note{Title: "a"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		ref2, err := s.Put(ctx, "p/1", Note{Title: "b"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if ref1 == ref2 {
			t.Fatal("distinct content produced the same ref")
		}
	})

	t.Run("ParentChain", func(t *testing.T) {
		s := newStore()

		r1, err := s.Put(ctx, "p/1", Note{Title: "v1"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		r2, err := s.Put(ctx, "p/1", Note{Title: "v2"}, &r1)
		if err != nil {
			t.Fatal(err)
		}
		r3, err := s.Put(ctx, "p/1", Note{Title: "v3"}, &r2)
		if err != nil {
			t.Fatal(err)
		}

		infos, err := s.ListVersions(ctx, "p/1")
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) != 3 {
			t.Fatalf("got %d versions, want 3", len(infos))
		}

		parents := make(map[corpus.Ref]*corpus.Ref)
		for _, info := range infos {
			parents[info.Hash] = info.Parent
		}
		if parents[r1] != nil {
			t.Errorf("v1 parent = %s, want none", parents[r1])
		}
		if p := parents[r2]; p == nil || *p != r1 {
			t.Errorf("v2 parent = %v, want %s", p, r1)
		}
		if p := parents[r3]; p == nil || *p != r2 {
			t.Errorf("v3 parent = %v, want %s", p, r2)
		}
	})

	t.Run("Branching", func(t *testing.T) {
		s := newStore()

		root, err := s.Put(ctx, "p/1", Note{Title: "root"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		a, err := s.Put(ctx, "p/1", Note{Title: "branch-a"}, &root)
		if err != nil {
			t.Fatal(err)
		}
		b, err := s.Put(ctx, "p/1", Note{Title: "branch-b"}, &root)
		if err != nil {
			t.Fatal(err)
		}

		infos, err := s.ListVersions(ctx, "p/1")
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) != 3 {
			t.Fatalf("got %d versions, want 3", len(infos))
		}
		for _, info := range infos {
			if info.Hash == a || info.Hash == b {
				if info.Parent == nil || *info.Parent != root {
					t.Errorf("version %s parent = %v, want %s", info.Hash, info.Parent, root)
				}
			}
		}
	})

	t.Run("Ordering", func(t *testing.T) {
		s := newStore()

		var refs []corpus.Ref
		for _, title := range []string{"first", "second", "third"} {
			ref, err := s.Put(ctx, "p/1", Note{Title: title}, nil)
			if err != nil {
				t.Fatal(err)
			}
			refs = append(refs, ref)
			time.Sleep(5 * time.Millisecond) // distinct created_at
		}

		infos, err := s.ListVersions(ctx, "p/1")
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) != len(refs) {
			t.Fatalf("got %d versions, want %d", len(infos), len(refs))
		}
		for i, info := range infos {
			if want := refs[len(refs)-1-i]; info.Hash != want {
				t.Errorf("position %d: got %s, want %s", i, info.Hash, want)
			}
			if i > 0 && infos[i-1].CreatedAt.Before(info.CreatedAt) {
				t.Errorf("versions not in descending created_at order at position %d", i)
			}
		}
	})

	t.Run("EmptyPath", func(t *testing.T) {
		s := newStore()

		infos, err := s.ListVersions(ctx, "p/unused")
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) != 0 {
			t.Fatalf("got %d versions on unused path, want 0", len(infos))
		}

		if err := s.Delete(ctx, "p/unused"); err != nil {
			t.Fatalf("delete of unused path: %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newStore()

		_, err := s.Get(ctx, "p/1", corpus.RefOf([]byte("no such content")))
		if !errors.Is(err, corpus.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}

		var cerr *corpus.Error
		if !errors.As(err, &cerr) {
			t.Fatalf("got %T, want *corpus.Error", err)
		}
		if cerr.Kind != corpus.KindNotFound {
			t.Errorf("got kind %s, want %s", cerr.Kind, corpus.KindNotFound)
		}
		if cerr.Path != "p/1" {
			t.Errorf("got path %s, want p/1", cerr.Path)
		}
	})

	t.Run("DeleteCompleteness", func(t *testing.T) {
		s := newStore()

		r1, err := s.Put(ctx, "p/1", Note{Title: "v1"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Put(ctx, "p/1", Note{Title: "v2"}, &r1); err != nil {
			t.Fatal(err)
		}
		other, err := s.Put(ctx, "p/2", Note{Title: "other"}, nil)
		if err != nil {
			t.Fatal(err)
		}

		if err := s.Delete(ctx, "p/1"); err != nil {
			t.Fatal(err)
		}

		infos, err := s.ListVersions(ctx, "p/1")
		if err != nil {
			t.Fatal(err)
		}
		if len(infos) != 0 {
			t.Fatalf("got %d versions after delete, want 0", len(infos))
		}

		got, err := s.Get(ctx, "p/2", other)
		if err != nil {
			t.Fatalf("other path affected by delete: %v", err)
		}
		if got.Title != "other" {
			t.Errorf("got title %q, want %q", got.Title, "other")
		}
	})
}
