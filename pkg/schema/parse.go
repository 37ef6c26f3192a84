package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/aretw0/aniame/pkg/tree"
)

// rawNode mirrors the keys a descriptor document may carry.
type rawNode struct {
	Type       string   `mapstructure:"type"`
	Required   bool     `mapstructure:"required"`
	IndexAs    []string `mapstructure:"indexAs"`
	Ref        string   `mapstructure:"ref"`
	Items      any      `mapstructure:"items"`
	Properties any      `mapstructure:"properties"`
}

// Parse checks raw with CheckSchema and converts it into a Descriptor.
func Parse(raw any, schemaNames []string) (Descriptor, error) {
	if err := CheckSchema(raw, schemaNames); err != nil {
		return nil, err
	}
	return build(raw)
}

func build(raw any) (Descriptor, error) {
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	attrs := Attributes{Required: node.Required, IndexAs: node.IndexAs}

	switch Kind(node.Type) {
	case KindString:
		return &StringType{Attributes: attrs}, nil
	case KindNumber:
		return &NumberType{Attributes: attrs}, nil
	case KindBoolean:
		return &BooleanType{Attributes: attrs}, nil

	case KindArray:
		items, err := build(node.Items)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Attributes: attrs, Items: items}, nil

	case KindObject:
		props, _ := tree.AsObject(node.Properties)
		m := orderedmap.New[string, Descriptor]()
		for _, key := range props.Keys() {
			child, _ := props.Get(key)
			d, err := build(child)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", key, err)
			}
			m.Set(key, d)
		}
		return &ObjectType{Attributes: attrs, Properties: m}, nil

	case KindRef:
		return &RefType{Attributes: attrs, Ref: node.Ref}, nil
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidSchema, node.Type)
}

// decodeNode decodes the first level of a descriptor document. Nested
// documents (items, properties) are kept as raw values.
func decodeNode(raw any) (rawNode, error) {
	var node rawNode
	obj, ok := tree.AsObject(raw)
	if !ok {
		return node, fmt.Errorf("%w: descriptor must be an object", ErrInvalidSchema)
	}
	flat := make(map[string]any, obj.Len())
	for _, key := range obj.Keys() {
		flat[key], _ = obj.Get(key)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &node,
		ErrorUnused: true,
	})
	if err != nil {
		return node, err
	}
	if err := dec.Decode(flat); err != nil {
		return node, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return node, nil
}
