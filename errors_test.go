package corpus

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMatching(t *testing.T) {
	cases := []struct {
		err  *Error
		want error
	}{
		{&Error{Kind: KindNotFound, Path: "p"}, ErrNotFound},
		{&Error{Kind: KindInvalidContent, Path: "p"}, ErrInvalidContent},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.want) {
			t.Errorf("%v does not match %v", c.err, c.want)
		}
	}

	ioErr := &Error{Kind: KindIO, Path: "p", Err: errors.New("connection reset")}
	if errors.Is(ioErr, ErrNotFound) || errors.Is(ioErr, ErrInvalidContent) {
		t.Error("io_error matched a non-io sentinel")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{
		Kind:    KindNotFound,
		Path:    "posts/7/42",
		Version: "abc123",
		Err:     ErrNotFound,
	}
	msg := err.Error()
	for _, want := range []string{"not_found", "posts/7/42", "abc123"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestErrorPreservesCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &Error{Kind: KindIO, Path: "p", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}
