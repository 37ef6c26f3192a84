/*
Package tree defines the decoded value model walked by the validators.

A tree is made of objects (map[string]any or *OrderedMap), arrays ([]any),
numbers, strings, booleans and nil. Plain maps are visited in sorted key
order; ordered maps in insertion order. Decode produces ordered maps so that
error reports follow the order of the source document.
*/
package tree
