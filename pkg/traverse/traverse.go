// Package traverse walks a data tree and its schema in lockstep.
//
// Walk calls every Visitor on each data node that a descriptor matches. A
// visitor returning Skip stops the descent below that node; the remaining
// visitors for the node still run. Arrays and objects are only descended
// when the data has the matching shape, object properties the schema does
// not declare are ignored, and refs are expanded through the dictionary at
// the same path.
package traverse

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
)

// Action tells Walk whether to descend below a node.
type Action int

const (
	Continue Action = iota
	Skip
)

func (a Action) String() string {
	if a == Skip {
		return "skip"
	}
	return "continue"
}

// Visitor is called for each matched node.
type Visitor func(ctx context.Context, node any, at jsonpath.Path, d schema.Descriptor) (Action, error)

// ErrRefCycle is returned when refs expand into each other without
// consuming any data.
var ErrRefCycle = errors.New("ref cycle without intervening data")

// Walk traverses data against d. It stops at the first visitor error or
// when ctx is done.
func Walk(ctx context.Context, data any, d schema.Descriptor, dict schema.Dictionary, visitors ...Visitor) error {
	w := &walker{dict: dict, visitors: visitors}
	return w.visit(ctx, data, jsonpath.Root(), d, nil)
}

// WalkNamed resolves name in dict and walks data against it.
func WalkNamed(ctx context.Context, data any, name string, dict schema.Dictionary, visitors ...Visitor) error {
	d, err := dict.Resolve(name)
	if err != nil {
		return err
	}
	return Walk(ctx, data, d, dict, visitors...)
}

type walker struct {
	dict     schema.Dictionary
	visitors []Visitor
}

// refs holds the ref names expanded at the current node; it resets whenever
// the walk moves into child data.
func (w *walker) visit(ctx context.Context, node any, at jsonpath.Path, d schema.Descriptor, refs []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("traverse: nil descriptor at %q", at.Pointer())
	}

	descend := true
	for _, v := range w.visitors {
		action, err := v(ctx, node, at, d)
		if err != nil {
			return err
		}
		if action == Skip {
			descend = false
		}
	}
	if !descend {
		return nil
	}

	switch desc := d.(type) {
	case *schema.ArrayType:
		items, ok := tree.AsArray(node)
		if !ok {
			return nil
		}
		for i, item := range items {
			if err := w.visit(ctx, item, at.Index(i), desc.Items, nil); err != nil {
				return err
			}
		}
	case *schema.ObjectType:
		obj, ok := tree.AsObject(node)
		if !ok {
			return nil
		}
		for _, key := range obj.Keys() {
			child, declared := desc.Property(key)
			if !declared {
				continue
			}
			value, _ := obj.Get(key)
			if err := w.visit(ctx, value, at.Key(key), child, nil); err != nil {
				return err
			}
		}
	case *schema.RefType:
		if slices.Contains(refs, desc.Ref) {
			return fmt.Errorf("%w: %q at %q", ErrRefCycle, desc.Ref, at.Pointer())
		}
		target, err := w.dict.Resolve(desc.Ref)
		if err != nil {
			return err
		}
		return w.visit(ctx, node, at, target, append(slices.Clip(refs), desc.Ref))
	}
	return nil
}
