package jsonpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/tree"
)

func obj(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}

func TestResolve_SimpleObject(t *testing.T) {
	root := obj("a", obj("b", []any{obj("c", obj("d", 1))}))
	got := jsonpath.Of("a", "b", 0, "c").Resolve(root)
	assert.Equal(t, obj("d", 1), got)
}

func TestResolve_WildcardFansOut(t *testing.T) {
	root := obj("a", obj("b", []any{
		obj("c", obj("d", 1)),
		obj("c", obj("e", 2)),
	}))
	got := jsonpath.Of("a", "b", nil, "c").Resolve(root)
	assert.Equal(t, []any{obj("d", 1), obj("e", 2)}, got)
}

func TestResolve_DeadEnds(t *testing.T) {
	root := obj("a", obj("b", []any{
		obj("c", obj("d", 1)),
		obj("e", 3),
	}))
	got := jsonpath.Of("a", "b", nil, "c").Resolve(root)
	assert.Equal(t, obj("d", 1), got)
}

func TestResolve_NestedArrays(t *testing.T) {
	root := obj("a", obj("b", []any{
		obj("c", []any{obj("d", 1)}),
		obj("c", []any{obj("e", 2), obj("f", 3)}),
	}))
	got := jsonpath.Of("a", "b", nil, "c", nil).Resolve(root)
	assert.Equal(t, []any{obj("d", 1), obj("e", 2), obj("f", 3)}, got)
}

func TestResolve_IllegalPaths(t *testing.T) {
	root := obj("a", obj("b", []any{
		obj("c", obj("d", 1)),
		obj("c", []any{obj("e", 2), obj("f", 3)}),
	}))
	got := jsonpath.Of("a", "b", nil, "c", nil).Resolve(root)
	assert.Equal(t, []any{obj("e", 2), obj("f", 3)}, got)
}

func TestResolve_NothingFound(t *testing.T) {
	root := obj("a", 1)
	assert.Nil(t, jsonpath.Of("a", "b").Resolve(root))
	assert.Nil(t, jsonpath.Of("missing").Resolve(root))
	assert.Empty(t, jsonpath.Of("a", "b").ResolveAll(root))
}

func TestResolve_OrderedDocument(t *testing.T) {
	root, err := tree.Decode([]byte(`{"pets": [{"name": "a"}, {"name": "b"}]}`))
	require.NoError(t, err)
	got := jsonpath.Of("pets", nil, "name").Resolve(root)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestResolveAndReplace_DoesNotMutateRoot(t *testing.T) {
	root := obj("a", obj("b", []any{
		obj("c", 1),
		obj("c", 2),
		obj("x", 3),
	}))

	updated, results := jsonpath.Of("a", "b", nil, "c").ResolveAndReplace(root, func(v any) any {
		return v.(int) * 10
	})

	assert.Equal(t, []any{10, 20}, results)
	assert.Equal(t, obj("a", obj("b", []any{
		obj("c", 10),
		obj("c", 20),
		obj("x", 3),
	})), updated)

	// Original untouched.
	assert.Equal(t, 1, jsonpath.Of("a", "b", 0, "c").Resolve(root))
	assert.Equal(t, 2, jsonpath.Of("a", "b", 1, "c").Resolve(root))
}

func TestResolveAndReplace_OrderedMapKeepsOrder(t *testing.T) {
	root, err := tree.Decode([]byte("z: 1\na: {b: old}\nm: 2\n"))
	require.NoError(t, err)

	updated, result := jsonpath.Of("a", "b").ResolveAndReplace(root, func(any) any { return "new" })
	assert.Equal(t, "new", result)

	o, ok := tree.AsObject(updated)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, o.Keys())
	assert.Equal(t, "new", jsonpath.Of("a", "b").Resolve(updated))
	assert.Equal(t, "old", jsonpath.Of("a", "b").Resolve(root))
}

func TestResolveAndReplace_MissingLeavesTreeAlone(t *testing.T) {
	root := obj("a", 1)
	updated, result := jsonpath.Of("b").ResolveAndReplace(root, func(any) any { return 2 })
	assert.Nil(t, result)
	assert.Equal(t, root, updated)
}
