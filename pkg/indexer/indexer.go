// Package indexer collects the schema locations tagged with indexAs.
//
// Indexing only looks at the schema: it walks a descriptor tree in
// pre-order and records, for every index name a descriptor is tagged with,
// the descriptor's location and a selection of its own fields. Refs are not
// followed, so a self-referencing schema is indexed exactly once.
package indexer

import (
	"maps"
	"slices"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
)

// Entry is one tagged descriptor. Path is a schema-space path: array items
// appear as the wildcard segment.
type Entry struct {
	Path jsonpath.Path  `json:"path"`
	Data map[string]any `json:"data"`
}

// Result maps index names to entries in pre-order. Only indexes with at
// least one entry are present.
type Result map[string][]Entry

// Names returns the index names in sorted order.
func (r Result) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

type config struct {
	indexes map[string]struct{} // nil: every index
	fields  []string
	capture bool // fields was set; otherwise every field is captured
}

// Option configures indexing.
type Option func(*config)

// WithIndexNames restricts the result to the given indexes.
func WithIndexNames(names ...string) Option {
	return func(c *config) {
		c.indexes = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.indexes[n] = struct{}{}
		}
	}
}

// WithCaptureFields selects which descriptor fields (e.g. "ref") are copied
// into Entry.Data. Without it every field of the descriptor is copied.
func WithCaptureFields(fields ...string) Option {
	return func(c *config) {
		c.fields = fields
		c.capture = true
	}
}

// Index walks d and returns the tagged locations.
func Index(d schema.Descriptor, opts ...Option) Result {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	result := Result{}
	visit(cfg, d, jsonpath.Root(), result)
	return result
}

// IndexDictionary indexes every entry of dict, keyed by schema name.
func IndexDictionary(dict schema.Dictionary, opts ...Option) map[string]Result {
	out := make(map[string]Result, len(dict))
	for _, name := range dict.Names() {
		out[name] = Index(dict[name], opts...)
	}
	return out
}

func visit(cfg *config, d schema.Descriptor, at jsonpath.Path, result Result) {
	if d == nil {
		return
	}
	attrs := d.Attrs()
	if len(attrs.IndexAs) > 0 {
		var data map[string]any
		seen := make(map[string]struct{}, len(attrs.IndexAs))
		for _, index := range attrs.IndexAs {
			if _, dup := seen[index]; dup {
				continue
			}
			seen[index] = struct{}{}
			if cfg.indexes != nil {
				if _, wanted := cfg.indexes[index]; !wanted {
					continue
				}
			}
			if data == nil {
				data = capture(cfg, d)
			}
			result[index] = append(result[index], Entry{Path: at, Data: maps.Clone(data)})
		}
	}

	switch v := d.(type) {
	case *schema.ArrayType:
		visit(cfg, v.Items, at.Any(), result)
	case *schema.ObjectType:
		for _, name := range v.PropertyNames() {
			child, _ := v.Property(name)
			visit(cfg, child, at.Key(name), result)
		}
	}
}

// capture copies the selected fields of the descriptor's document form.
// Fields the descriptor does not carry are left out.
func capture(cfg *config, d schema.Descriptor) map[string]any {
	encoded := schema.Encode(d)
	data := make(map[string]any)
	if !cfg.capture {
		for pair := encoded.Oldest(); pair != nil; pair = pair.Next() {
			data[pair.Key] = tree.ToPlain(pair.Value)
		}
		return data
	}
	for _, field := range cfg.fields {
		if v, ok := encoded.Get(field); ok {
			data[field] = tree.ToPlain(v)
		}
	}
	return data
}
