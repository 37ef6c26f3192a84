/*
Package aniame validates JSON-like data against a dictionary of named schemas.

A schema is a tree of descriptors, one per level of the data: "string",
"number", "boolean", "object" (with named properties), "array" (with one
item descriptor) and "ref" (a pointer to another schema of the dictionary).
Descriptors may be marked required and tagged with indexAs names.

# Concept

Validation never stops at the first defect. Every location that does not
conform is reported as a path into the data, in traversal order, so a
client can highlight every faulty field at once. Ref locations may be
handed to a RefChecker first, which decides whether the value is a valid
foreign key, an invalid one, or should be validated structurally.

# Usage

	eng, err := aniame.New(aniame.WithDictionaryFile("schemas.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	data, err := tree.Decode(body)
	if err != nil {
		log.Fatal(err)
	}

	out, err := eng.Validate(ctx, data, "person")
	if err != nil {
		log.Fatal(err) // unknown schema, ref backend failure, ...
	}
	for _, e := range out.Errors {
		fmt.Println(e.Path.Pointer(), e.Reason)
	}

Data decoded with tree.Decode keeps the key order of the document, which
is the order errors are reported in. Plain map[string]any values are
visited in sorted key order.
*/
package aniame
