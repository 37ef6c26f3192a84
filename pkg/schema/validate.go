package schema

import (
	"fmt"
	"slices"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/tree"
)

var commonKeys = []string{"type", "required", "indexAs"}

// allowedKeys is the key whitelist of each descriptor type.
var allowedKeys = map[Kind][]string{
	KindString:  commonKeys,
	KindNumber:  commonKeys,
	KindBoolean: commonKeys,
	KindArray:   append(slices.Clone(commonKeys), "items"),
	KindObject:  append(slices.Clone(commonKeys), "properties"),
	KindRef:     append(slices.Clone(commonKeys), "ref"),
}

// ValidateSchema reports whether raw, a decoded schema document, is a legal
// descriptor tree whose references all name one of schemaNames.
func ValidateSchema(raw any, schemaNames []string) bool {
	return CheckSchema(raw, schemaNames) == nil
}

// CheckSchema is ValidateSchema returning the first defect as a *SchemaError.
// The check stops at the first defect.
func CheckSchema(raw any, schemaNames []string) error {
	names := make(map[string]struct{}, len(schemaNames))
	for _, n := range schemaNames {
		names[n] = struct{}{}
	}
	return checkNode(raw, jsonpath.Root(), names)
}

func invalid(at jsonpath.Path, format string, args ...any) error {
	return &SchemaError{Pointer: at.Pointer(), Reason: fmt.Sprintf(format, args...)}
}

func checkNode(raw any, at jsonpath.Path, names map[string]struct{}) error {
	node, ok := tree.AsObject(raw)
	if !ok {
		return invalid(at, "descriptor must be an object, got %s", tree.KindOf(raw))
	}

	typ, _ := node.Get("type")
	name, ok := typ.(string)
	if !ok || !Kind(name).Valid() {
		return invalid(at, "unknown type %v", typ)
	}
	kind := Kind(name)

	if v, present := node.Get("required"); present {
		if _, ok := v.(bool); !ok {
			return invalid(at.Key("required"), "required must be a boolean")
		}
	}

	if v, present := node.Get("indexAs"); present {
		items, ok := tree.AsArray(v)
		if !ok {
			return invalid(at.Key("indexAs"), "indexAs must be an array of strings")
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return invalid(at.Key("indexAs").Index(i), "index name must be a string")
			}
		}
	}

	for _, key := range node.Keys() {
		if !slices.Contains(allowedKeys[kind], key) {
			return invalid(at.Key(key), "key not allowed on %s descriptor", kind)
		}
	}

	switch kind {
	case KindArray:
		items, _ := node.Get("items")
		return checkNode(items, at.Key("items"), names)

	case KindObject:
		v, _ := node.Get("properties")
		props, ok := tree.AsObject(v)
		if !ok {
			return invalid(at.Key("properties"), "properties must be an object")
		}
		for _, key := range props.Keys() {
			child, _ := props.Get(key)
			if err := checkNode(child, at.Key("properties").Key(key), names); err != nil {
				return err
			}
		}

	case KindRef:
		v, _ := node.Get("ref")
		ref, ok := v.(string)
		if !ok {
			return invalid(at.Key("ref"), "ref must be a string")
		}
		if _, known := names[ref]; !known {
			return invalid(at.Key("ref"), "ref %q names no known schema", ref)
		}
	}

	return nil
}
