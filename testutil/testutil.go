// Package testutil provides conformance checks that any Backend
// implementation must pass, exercised through both the raw Backend
// contract and the versioned Store built on top of it.
package testutil

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/f0rbit/corpus"
)

// Note is a minimal content type for exercising stores under test.
type Note struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NoteCodec is a validating JSON codec for Note.
type NoteCodec struct{}

var _ corpus.Codec[Note] = NoteCodec{}

func (NoteCodec) Encode(n Note) ([]byte, error) {
	if n.Title == "" {
		return nil, errors.New("title must not be empty")
	}
	return json.Marshal(n)
}

func (NoteCodec) Decode(data []byte) (Note, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var n Note
	if err := dec.Decode(&n); err != nil {
		return Note{}, errors.Wrap(err, "decoding note")
	}
	if n.Title == "" {
		return Note{}, errors.New("title must not be empty")
	}
	return n, nil
}
