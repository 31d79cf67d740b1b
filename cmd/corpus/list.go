package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

func (c maincmd) list(ctx context.Context, fs *flag.FlagSet, args []string) error {
	path := fs.String("path", "", "document path")

	err := fs.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing args")
	}
	if *path == "" {
		return errors.New("must supply -path")
	}

	infos, err := c.s.ListVersions(ctx, *path)
	if err != nil {
		return errors.Wrapf(err, "listing versions of %s", *path)
	}

	for _, info := range infos {
		parent := "-"
		if info.Parent != nil {
			parent = info.Parent.String()
		}
		fmt.Printf("%s  %s  parent=%s\n", info.Hash, info.CreatedAt.Format(time.RFC3339), parent)
	}
	return nil
}
