package tree

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind classifies a decoded value.
type Kind int

const (
	// KindUnknown is any value outside the model, such as a struct or a channel.
	KindUnknown Kind = iota
	// KindNull is nil.
	KindNull
	// KindBoolean is a bool.
	KindBoolean
	// KindNumber is any Go integer or float, or a json.Number.
	KindNumber
	// KindString is a string.
	KindString
	// KindArray is a slice or Go array, usually []any.
	KindArray
	// KindObject is a map[string]any or an *OrderedMap.
	KindObject
)

// String returns the lower-case name used in error reports.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// OrderedMap is the object representation produced by Decode.
// It keeps keys in document order.
type OrderedMap = orderedmap.OrderedMap[string, any]

// NewOrderedMap creates an empty ordered object.
func NewOrderedMap() *OrderedMap {
	return orderedmap.New[string, any]()
}

// Object is a read-only view over an object-shaped value.
type Object interface {
	// Keys returns the property names in iteration order.
	Keys() []string
	// Get returns the value of a property and whether it is present.
	Get(key string) (any, bool)
	Len() int
}

type mapObject map[string]any

// Keys of a plain map are sorted so that traversal order is reproducible.
func (m mapObject) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m mapObject) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapObject) Len() int { return len(m) }

type orderedObject struct {
	m *OrderedMap
}

func (o orderedObject) Keys() []string {
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (o orderedObject) Get(key string) (any, bool) {
	return o.m.Get(key)
}

func (o orderedObject) Len() int { return o.m.Len() }

// AsObject returns an Object view if v is object-shaped.
// Both map[string]any and *OrderedMap are accepted.
func AsObject(v any) (Object, bool) {
	switch o := v.(type) {
	case map[string]any:
		return mapObject(o), true
	case *OrderedMap:
		if o == nil {
			return nil, false
		}
		return orderedObject{m: o}, true
	}
	return nil, false
}

// AsArray returns the elements of v if it is array-shaped.
// []any is returned as is; other slice and array kinds are copied through reflection.
func AsArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case nil:
		return nil, false
	case []any:
		return a, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// KindOf reports the kind of a decoded value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return KindNumber
	}
	if _, ok := AsObject(v); ok {
		return KindObject
	}
	if _, ok := AsArray(v); ok {
		return KindArray
	}
	return KindUnknown
}

// Child returns the value under a property name of an object, or under a
// decimal index of an array. It mirrors the lookup rules of JSON pointers.
func Child(v any, key string) (any, bool) {
	if obj, ok := AsObject(v); ok {
		return obj.Get(key)
	}
	if arr, ok := AsArray(v); ok {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(arr) {
			return nil, false
		}
		return arr[i], true
	}
	return nil, false
}

// ToPlain converts ordered maps (recursively) into map[string]any.
// Useful before handing a tree to code that only understands plain maps.
func ToPlain(v any) any {
	if obj, ok := AsObject(v); ok {
		out := make(map[string]any, obj.Len())
		for _, k := range obj.Keys() {
			child, _ := obj.Get(k)
			out[k] = ToPlain(child)
		}
		return out
	}
	if arr, ok := v.([]any); ok {
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = ToPlain(item)
		}
		return out
	}
	return v
}
