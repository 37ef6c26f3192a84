package schema

import (
	"encoding/json"

	"github.com/aretw0/aniame/pkg/tree"
)

// Encode converts a descriptor back into its document form. Keys follow the
// order type, required, indexAs, then the type-specific key. Required is
// only written when true.
func Encode(d Descriptor) *tree.OrderedMap {
	out := tree.NewOrderedMap()
	out.Set("type", string(d.Kind()))
	attrs := d.Attrs()
	if attrs.Required {
		out.Set("required", true)
	}
	if len(attrs.IndexAs) > 0 {
		names := make([]any, len(attrs.IndexAs))
		for i, n := range attrs.IndexAs {
			names[i] = n
		}
		out.Set("indexAs", names)
	}

	switch v := d.(type) {
	case *ArrayType:
		out.Set("items", Encode(v.Items))
	case *ObjectType:
		props := tree.NewOrderedMap()
		for _, name := range v.PropertyNames() {
			child, _ := v.Property(name)
			props.Set(name, Encode(child))
		}
		out.Set("properties", props)
	case *RefType:
		out.Set("ref", v.Ref)
	}
	return out
}

// Marshal serializes a descriptor as JSON, keeping property order.
func Marshal(d Descriptor) ([]byte, error) {
	return json.Marshal(Encode(d))
}

// Unmarshal decodes a JSON or YAML descriptor document and parses it.
func Unmarshal(data []byte, schemaNames []string) (Descriptor, error) {
	raw, err := tree.Decode(data)
	if err != nil {
		return nil, err
	}
	return Parse(raw, schemaNames)
}

// MarshalJSON serializes the dictionary as an object of descriptor documents.
func (d Dictionary) MarshalJSON() ([]byte, error) {
	out := tree.NewOrderedMap()
	for _, name := range d.Names() {
		out.Set(name, Encode(d[name]))
	}
	return json.Marshal(out)
}

// UnmarshalDictionary decodes a JSON or YAML dictionary document and parses it.
func UnmarshalDictionary(data []byte, pending ...string) (Dictionary, error) {
	raw, err := tree.Decode(data)
	if err != nil {
		return nil, err
	}
	return ParseDictionary(raw, pending...)
}
