package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/post"
)

func (c maincmd) put(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var (
		path      = fs.String("path", "", "document path")
		parentstr = fs.String("parent", "", "hex id of the parent version")
		title     = fs.String("title", "", "post title")
		desc      = fs.String("desc", "", "post description")
		format    = fs.String("format", "md", "post format (md, html, txt)")
	)
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if *path == "" {
		return errors.New("must supply -path")
	}

	// Body comes from the named file, or stdin with no argument.
	var body []byte
	if rest := fs.Args(); len(rest) > 0 {
		body, err = os.ReadFile(rest[0])
		if err != nil {
			return errors.Wrapf(err, "reading %s", rest[0])
		}
	} else {
		body, err = io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "reading stdin")
		}
	}

	var parent *corpus.Ref
	if *parentstr != "" {
		ref, err := corpus.RefFromHex(*parentstr)
		if err != nil {
			return errors.Wrapf(err, "decoding parent %s", *parentstr)
		}
		parent = &ref
	}

	content := post.Content{
		Title:       *title,
		Body:        string(body),
		Description: *desc,
		Format:      post.Format(*format),
	}

	ref, err := c.s.Put(ctx, *path, content, parent)
	if err != nil {
		return errors.Wrapf(err, "putting version at %s", *path)
	}

	fmt.Printf("%s\n", ref)
	return nil
}
