/*
Package jsonpath locates values inside decoded trees.

A Path is a list of segments: property names, array indexes, and the
wildcard, which stands for every element of an array and is used for
locations inside a schema rather than inside data.

	p := jsonpath.Root().Key("pets").Index(1).Key("race")
	p.Pointer() // "/pets/1/race"

Paths render as RFC 6901 pointers and resolve against trees, optionally
producing a patched copy with ResolveAndReplace.
*/
package jsonpath
