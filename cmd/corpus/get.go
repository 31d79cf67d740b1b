package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/pkg/errors"

	"github.com/f0rbit/corpus"
)

func (c maincmd) get(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var (
		path    = fs.String("path", "", "document path")
		refstr  = fs.String("ref", "", "hex id of the version to get")
		rawBody = fs.Bool("body", false, "print the body only, not the full content")
	)
	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if *path == "" || *refstr == "" {
		return errors.New("must supply -path and -ref")
	}

	ref, err := corpus.RefFromHex(*refstr)
	if err != nil {
		return errors.Wrapf(err, "decoding ref %s", *refstr)
	}

	content, err := c.s.Get(ctx, *path, ref)
	if err != nil {
		return errors.Wrapf(err, "getting version %s of %s", ref, *path)
	}

	if *rawBody {
		_, err = os.Stdout.WriteString(content.Body)
		return errors.Wrap(err, "writing body to stdout")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(content), "writing content to stdout")
}
