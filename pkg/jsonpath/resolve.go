package jsonpath

import (
	"maps"
	"strconv"

	"github.com/aretw0/aniame/pkg/tree"
)

// ResolveAll walks root along the path and returns every value reached.
//
// A wildcard fans out over the elements of an array. A step that meets a
// scalar, or a property/index that does not exist, ends that branch
// silently. Values are returned in discovery order.
func (p Path) ResolveAll(root any) []any {
	branches := []any{root}
	for _, seg := range p.segments {
		next := make([]any, 0, len(branches))
		for _, node := range branches {
			next = append(next, step(node, seg)...)
		}
		branches = next
		if len(branches) == 0 {
			break
		}
	}
	return branches
}

// Resolve is ResolveAll collapsed: nil when nothing was reached, the value
// itself when exactly one branch survived, and a []any otherwise.
func (p Path) Resolve(root any) any {
	return collapse(p.ResolveAll(root))
}

// ResolveAndReplace returns a copy of root in which every value reached by
// the path is replaced by fn(value), together with the fn results collapsed
// the same way Resolve collapses values. Containers along the path are copied;
// root itself is never modified.
func (p Path) ResolveAndReplace(root any, fn func(any) any) (any, any) {
	var results []any
	updated := replace(root, p.segments, fn, &results)
	return updated, collapse(results)
}

func collapse(values []any) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}

func step(node any, seg Segment) []any {
	if seg.kind == WildcardSegment {
		arr, ok := tree.AsArray(node)
		if !ok {
			return nil
		}
		return arr
	}
	if v, ok := tree.Child(node, seg.token()); ok {
		return []any{v}
	}
	return nil
}

func replace(node any, segs []Segment, fn func(any) any, results *[]any) any {
	if len(segs) == 0 {
		r := fn(node)
		*results = append(*results, r)
		return r
	}
	seg, rest := segs[0], segs[1:]

	if seg.kind == WildcardSegment {
		arr, ok := tree.AsArray(node)
		if !ok {
			return node
		}
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = replace(item, rest, fn, results)
		}
		return out
	}

	key := seg.token()
	switch n := node.(type) {
	case map[string]any:
		child, ok := n[key]
		if !ok {
			return node
		}
		out := maps.Clone(n)
		out[key] = replace(child, rest, fn, results)
		return out

	case *tree.OrderedMap:
		if n == nil {
			return node
		}
		child, ok := n.Get(key)
		if !ok {
			return node
		}
		out := tree.NewOrderedMap()
		for pair := n.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, pair.Value)
		}
		out.Set(key, replace(child, rest, fn, results))
		return out
	}

	arr, ok := tree.AsArray(node)
	if !ok {
		return node
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= len(arr) {
		return node
	}
	out := make([]any, len(arr))
	copy(out, arr)
	out[i] = replace(arr[i], rest, fn, results)
	return out
}
