// Package store provides a config-driven registry of backend factories.
// Each backend package registers itself in an init function,
// keyed by a type name; deployments pick the substrate from
// configuration rather than code.
package store

import (
	"context"
	"fmt"

	"github.com/f0rbit/corpus"
)

type Factory func(context.Context, map[string]interface{}) (corpus.Backend, error)

var registry = make(map[string]Factory)

func Register(key string, f Factory) {
	registry[key] = f
}

func Create(ctx context.Context, key string, conf map[string]interface{}) (corpus.Backend, error) {
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("key %s not found in registry", key)
	}
	return f(ctx, conf)
}
