package main

import (
	"context"
	"flag"

	"github.com/pkg/errors"
)

func (c maincmd) delete(ctx context.Context, fs *flag.FlagSet, args []string) error {
	path := fs.String("path", "", "document path")

	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if *path == "" {
		return errors.New("must supply -path")
	}

	return errors.Wrapf(c.s.Delete(ctx, *path), "deleting %s", *path)
}
