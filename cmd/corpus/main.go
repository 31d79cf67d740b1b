// Command corpus is a CLI interface to versioned content stores.
//
// It reads a JSON config file naming the backend type and its
// parameters, plus an optional "store" namespace (default "posts"),
// and operates on post content.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/bobg/subcmd"

	"github.com/f0rbit/corpus"
	"github.com/f0rbit/corpus/post"
	"github.com/f0rbit/corpus/store"
	_ "github.com/f0rbit/corpus/store/file"
	_ "github.com/f0rbit/corpus/store/gcs"
	_ "github.com/f0rbit/corpus/store/logging"
	_ "github.com/f0rbit/corpus/store/lru"
	_ "github.com/f0rbit/corpus/store/mem"
	_ "github.com/f0rbit/corpus/store/pg"
	_ "github.com/f0rbit/corpus/store/sqlite3"
)

type maincmd struct {
	s *corpus.Store[post.Content]
}

func main() {
	config := flag.String("config", "corpusconf.json", "path to config file")
	flag.Parse()

	var conf map[string]interface{}
	f, err := os.Open(*config)
	if err != nil {
		log.Fatalf("Opening config file %s: %s", *config, err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&conf)
	if err != nil {
		log.Fatalf("Decoding config file %s: %s", *config, err)
	}

	typ, ok := conf["type"].(string)
	if !ok {
		log.Fatalf("Config file %s missing `type` parameter", *config)
	}

	storeID := "posts"
	if s, ok := conf["store"].(string); ok {
		storeID = s
	}

	ctx := context.Background()

	backend, err := store.Create(ctx, typ, conf)
	if err != nil {
		log.Fatalf("Creating %s-type backend: %s", typ, err)
	}

	c := maincmd{s: corpus.NewStore[post.Content](backend, post.Codec{}, storeID)}
	err = subcmd.Run(ctx, c, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
}

func (c maincmd) Subcmds() map[string]subcmd.Subcmd {
	return map[string]subcmd.Subcmd{
		"put":    {F: c.put},
		"get":    {F: c.get},
		"list":   {F: c.list},
		"delete": {F: c.delete},
	}
}
