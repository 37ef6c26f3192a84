package traverse

import (
	"context"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
)

// Reference is a data location bound to a ref descriptor.
type Reference struct {
	Path  jsonpath.Path `json:"path"`
	Ref   string        `json:"ref"`
	Value any           `json:"value"`
}

// CollectReferences lists every location of data that a ref descriptor
// matches, in traversal order. Nested refs reached through an expanded ref
// are listed too, so the same path can appear once per ref in a chain.
func CollectReferences(ctx context.Context, data any, d schema.Descriptor, dict schema.Dictionary) ([]Reference, error) {
	var refs []Reference
	collect := func(_ context.Context, node any, at jsonpath.Path, d schema.Descriptor) (Action, error) {
		if r, ok := d.(*schema.RefType); ok {
			refs = append(refs, Reference{Path: at, Ref: r.Ref, Value: node})
		}
		return Continue, nil
	}
	if err := Walk(ctx, data, d, dict, collect); err != nil {
		return nil, err
	}
	return refs, nil
}

// Keys groups the scalar reference values by ref name. Objects, arrays and
// nulls are dropped. Callers use it to prefetch foreign keys in bulk.
func Keys(refs []Reference) map[string][]any {
	out := make(map[string][]any)
	for _, r := range refs {
		switch tree.KindOf(r.Value) {
		case tree.KindString, tree.KindNumber, tree.KindBoolean:
			out[r.Ref] = append(out[r.Ref], r.Value)
		}
	}
	return out
}
