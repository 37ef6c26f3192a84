package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the value of a descriptor's "type" key.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindRef     Kind = "ref"
)

// Kinds lists every known descriptor type.
var Kinds = []Kind{KindString, KindNumber, KindBoolean, KindObject, KindArray, KindRef}

// Valid reports whether k is one of the known descriptor types.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Attributes are the keys shared by every descriptor type.
type Attributes struct {
	// Required only matters on the descriptor of an object property.
	Required bool
	// IndexAs names the indexes the descriptor is registered under.
	IndexAs []string
}

// Attrs returns a copy of the attributes.
func (a Attributes) Attrs() Attributes {
	out := a
	if a.IndexAs != nil {
		out.IndexAs = append([]string(nil), a.IndexAs...)
	}
	return out
}

func (a *Attributes) attributes() *Attributes { return a }

// Descriptor is a node of a schema tree. The set of implementations is
// closed: *StringType, *NumberType, *BooleanType, *ObjectType, *ArrayType
// and *RefType.
type Descriptor interface {
	Kind() Kind
	Attrs() Attributes
	attributes() *Attributes
}

// StringType matches string values.
type StringType struct{ Attributes }

func (*StringType) Kind() Kind { return KindString }

// NumberType matches numeric values.
type NumberType struct{ Attributes }

func (*NumberType) Kind() Kind { return KindNumber }

// BooleanType matches boolean values.
type BooleanType struct{ Attributes }

func (*BooleanType) Kind() Kind { return KindBoolean }

// ObjectType matches objects whose properties are all declared.
type ObjectType struct {
	Attributes
	Properties *orderedmap.OrderedMap[string, Descriptor]
}

func (*ObjectType) Kind() Kind { return KindObject }

// Property returns the descriptor of a declared property.
func (o *ObjectType) Property(name string) (Descriptor, bool) {
	if o.Properties == nil {
		return nil, false
	}
	return o.Properties.Get(name)
}

// PropertyNames returns the declared property names in declaration order.
func (o *ObjectType) PropertyNames() []string {
	if o.Properties == nil {
		return nil
	}
	names := make([]string, 0, o.Properties.Len())
	for pair := o.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ArrayType matches arrays whose elements all match Items.
type ArrayType struct {
	Attributes
	Items Descriptor
}

func (*ArrayType) Kind() Kind { return KindArray }

// RefType points at a named descriptor of a Dictionary.
type RefType struct {
	Attributes
	Ref string
}

func (*RefType) Kind() Kind { return KindRef }

// --- Builders ---

// Property pairs a property name with its descriptor, for Object.
type Property struct {
	Name       string
	Descriptor Descriptor
}

// Prop creates a Property.
func Prop(name string, d Descriptor) Property {
	return Property{Name: name, Descriptor: d}
}

// String creates a string descriptor.
func String() *StringType { return &StringType{} }

// Number creates a number descriptor.
func Number() *NumberType { return &NumberType{} }

// Boolean creates a boolean descriptor.
func Boolean() *BooleanType { return &BooleanType{} }

// Object creates an object descriptor with properties in the given order.
func Object(props ...Property) *ObjectType {
	m := orderedmap.New[string, Descriptor]()
	for _, p := range props {
		m.Set(p.Name, p.Descriptor)
	}
	return &ObjectType{Properties: m}
}

// Array creates an array descriptor.
func Array(items Descriptor) *ArrayType { return &ArrayType{Items: items} }

// Ref creates a reference to the named descriptor.
func Ref(name string) *RefType { return &RefType{Ref: name} }

// Required marks d as required and returns it.
func Required(d Descriptor) Descriptor {
	d.attributes().Required = true
	return d
}

// Indexed adds index names to d and returns it.
func Indexed(d Descriptor, names ...string) Descriptor {
	a := d.attributes()
	a.IndexAs = append(a.IndexAs, names...)
	return d
}
