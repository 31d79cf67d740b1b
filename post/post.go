// Package post defines the content type stored for blog posts
// and its corpus codec.
package post

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/f0rbit/corpus"
)

// Format is the markup format of a post body.
type Format string

const (
	Markdown Format = "md"
	HTML     Format = "html"
	Plain    Format = "txt"
)

func (f Format) valid() bool {
	switch f {
	case Markdown, HTML, Plain:
		return true
	}
	return false
}

// Content is one snapshot of a post's editable fields.
type Content struct {
	Title       string `json:"title"`
	Body        string `json:"content"`
	Description string `json:"description,omitempty"`
	Format      Format `json:"format"`
}

func (c Content) validate() error {
	if c.Title == "" {
		return errors.New("title must not be empty")
	}
	if !c.Format.valid() {
		return errors.Errorf("unknown format %q", c.Format)
	}
	return nil
}

// Codec encodes Content as JSON with a fixed field order,
// so that identical posts always produce identical bytes
// (and therefore identical version ids).
type Codec struct{}

var _ corpus.Codec[Content] = Codec{}

func (Codec) Encode(c Content) ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(c)
}

func (Codec) Decode(data []byte) (Content, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var c Content
	if err := dec.Decode(&c); err != nil {
		return Content{}, errors.Wrap(err, "decoding post content")
	}
	if err := c.validate(); err != nil {
		return Content{}, err
	}
	return c, nil
}
