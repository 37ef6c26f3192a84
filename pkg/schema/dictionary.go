package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/aniame/pkg/tree"
)

// Dictionary maps schema names to root descriptors. It is built once and
// only read afterwards.
type Dictionary map[string]Descriptor

// Lookup returns the descriptor registered under name.
func (d Dictionary) Lookup(name string) (Descriptor, bool) {
	desc, ok := d[name]
	return desc, ok && desc != nil
}

// Resolve is Lookup returning ErrUnknownSchema for missing names.
func (d Dictionary) Resolve(name string) (Descriptor, error) {
	desc, ok := d.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return desc, nil
}

// Names returns the schema names in sorted order.
func (d Dictionary) Names() []string {
	return slices.Sorted(maps.Keys(d))
}

// Define parses raw and registers it under name. References may name any
// entry already in the dictionary, name itself, or one of pending.
// d must not be nil.
func (d Dictionary) Define(name string, raw any, pending ...string) error {
	known := append(d.Names(), name)
	known = append(known, pending...)
	desc, err := Parse(raw, known)
	if err != nil {
		return withSchemaName(name, err)
	}
	d[name] = desc
	return nil
}

// ParseDictionary parses a document mapping schema names to descriptors.
// Every entry may reference every other entry, which allows mutually
// recursive schemas, as well as the names in pending.
func ParseDictionary(raw any, pending ...string) (Dictionary, error) {
	obj, ok := tree.AsObject(raw)
	if !ok {
		return nil, fmt.Errorf("%w: dictionary must be an object of schemas", ErrInvalidSchema)
	}
	names := append(obj.Keys(), pending...)

	dict := make(Dictionary, obj.Len())
	for _, name := range obj.Keys() {
		entry, _ := obj.Get(name)
		desc, err := Parse(entry, names)
		if err != nil {
			return nil, withSchemaName(name, err)
		}
		dict[name] = desc
	}
	return dict, nil
}

func withSchemaName(name string, err error) error {
	var se *SchemaError
	if errors.As(err, &se) {
		named := *se
		named.Schema = name
		return &named
	}
	return fmt.Errorf("schema %q: %w", name, err)
}
