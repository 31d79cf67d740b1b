package corpus

import (
	"errors"
	"fmt"
)

// ErrNotFound is the error returned when a path or version is absent.
// It is an expected condition, not a fault: callers branch on it.
var ErrNotFound = errors.New("not found")

// ErrInvalidContent is the error returned when stored bytes fail to
// decode or validate. It signals data corruption or a codec mismatch
// and is not retryable.
var ErrInvalidContent = errors.New("invalid content")

// Kind classifies an Error for the consumer boundary.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindInvalidContent Kind = "invalid_content"
	KindIO             Kind = "io_error"
)

// Error is the failure value returned by Store operations.
// It carries the path and, where known, the version involved,
// and preserves the underlying cause for diagnostics.
type Error struct {
	Kind    Kind
	Path    string
	Version string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: path %s", e.Kind, e.Path)
	if e.Version != "" {
		msg += ", version " + e.Version
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) and errors.Is(err, ErrInvalidContent)
// work on wrapped Errors regardless of the underlying cause.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidContent:
		return e.Kind == KindInvalidContent
	}
	return false
}
