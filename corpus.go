package corpus

import "github.com/pkg/errors"

// Definition names one logical store and the key namespace
// its versions live under.
type Definition struct {
	Name string

	// StoreID is the first segment of every blob key the store writes.
	// Defaults to Name.
	StoreID string
}

// Corpus is a registry of named store definitions sharing one Backend.
// One backend connection is reused across many logical stores and many
// paths; each document's history remains fully independent.
type Corpus struct {
	backend Backend
	defs    map[string]Definition
}

// Builder composes a Corpus.
type Builder struct {
	backend Backend
	defs    []Definition
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Backend sets the backend shared by every store in the corpus.
func (b *Builder) Backend(backend Backend) *Builder {
	b.backend = backend
	return b
}

// Define adds store definitions to the corpus.
func (b *Builder) Define(defs ...Definition) *Builder {
	b.defs = append(b.defs, defs...)
	return b
}

func (b *Builder) Build() (*Corpus, error) {
	if b.backend == nil {
		return nil, errors.New("no backend configured")
	}

	defs := make(map[string]Definition, len(b.defs))
	for _, def := range b.defs {
		if def.Name == "" {
			return nil, errors.New("store definition with empty name")
		}
		if _, ok := defs[def.Name]; ok {
			return nil, errors.Errorf("duplicate store definition %q", def.Name)
		}
		if def.StoreID == "" {
			def.StoreID = def.Name
		}
		defs[def.Name] = def
	}

	return &Corpus{backend: b.backend, defs: defs}, nil
}

// Backend returns the backend shared by the corpus's stores.
func (c *Corpus) Backend() Backend {
	return c.backend
}

// OpenStore builds the named store, bound to the corpus's backend
// and the given codec.
func OpenStore[T any](c *Corpus, name string, codec Codec[T]) (*Store[T], error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, errors.Errorf("store %q not defined", name)
	}
	return NewStore(c.backend, codec, def.StoreID), nil
}
