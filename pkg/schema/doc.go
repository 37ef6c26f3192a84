// Package schema defines schema descriptors and checks schema documents.
//
// A descriptor declares the expected shape of a value. There are six types:
// string, number, boolean, object (with named properties), array (with a
// single items descriptor) and ref (a named pointer into a Dictionary).
//
// Descriptors can be built in code:
//
//	person := schema.Object(
//	    schema.Prop("name", schema.Required(schema.String())),
//	    schema.Prop("pets", schema.Array(schema.Object(
//	        schema.Prop("race", schema.Ref("race")),
//	    ))),
//	)
//
// or parsed from decoded documents, which are checked against the meta-schema
// first:
//
//	dict, err := schema.UnmarshalDictionary(data)
//
// CheckSchema and ValidateSchema only look at a document; they report the
// first defect and do not try to be exhaustive. Schema authoring errors are
// expected to be fixed during development.
package schema
