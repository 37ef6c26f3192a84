package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
)

// Validator checks data against descriptors. It is safe for concurrent use.
type Validator struct {
	dict            schema.Dictionary
	enforceRequired bool
	check           RefChecker
	concurrency     int
	logger          *slog.Logger
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{enforceRequired: true}
	for _, opt := range opts {
		opt(v)
	}
	v.applyDefaults()
	return v
}

// Validate checks data against d and reports every defect found.
// The error is reserved for problems with the schema or the environment
// (unknown ref target, RefChecker failure, cancelled context); defects of
// the data are always reported through the Outcome.
func Validate(ctx context.Context, data any, d schema.Descriptor, opts ...Option) (*Outcome, error) {
	return New(opts...).Validate(ctx, data, d)
}

// ValidateNamed resolves name in the dictionary and validates data against it.
func ValidateNamed(ctx context.Context, data any, name string, opts ...Option) (*Outcome, error) {
	return New(opts...).ValidateNamed(ctx, data, name)
}

// Validate checks data against d.
func (v *Validator) Validate(ctx context.Context, data any, d schema.Descriptor) (*Outcome, error) {
	w := &walker{
		dict:   v.dict,
		check:  v.check,
		logger: v.logger,
	}
	if v.concurrency > 1 {
		w.sem = semaphore.NewWeighted(int64(v.concurrency - 1))
	}

	errs, err := w.walk(ctx, data, jsonpath.Root(), d, v.enforceRequired, nil)
	if err != nil {
		return nil, err
	}
	return &Outcome{Errors: errs}, nil
}

// ValidateNamed resolves name in the dictionary and validates data against it.
func (v *Validator) ValidateNamed(ctx context.Context, data any, name string) (*Outcome, error) {
	d, err := v.dict.Resolve(name)
	if err != nil {
		return nil, err
	}
	return v.Validate(ctx, data, d)
}

type walker struct {
	dict   schema.Dictionary
	check  RefChecker
	logger *slog.Logger
	sem    *semaphore.Weighted // nil: sequential
}

// branch is one child of an array or object. A branch either carries a
// defect already known by its parent, or a subtree still to walk.
type branch struct {
	node    any
	at      jsonpath.Path
	d       schema.Descriptor
	enforce bool
	fixed   *ValidationError
}

// walk validates node against d. refs lists the references followed so far
// without descending into the data, to detect reference loops.
func (w *walker) walk(ctx context.Context, node any, at jsonpath.Path, d schema.Descriptor, enforceRequired bool, refs []string) ([]ValidationError, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch desc := d.(type) {
	case *schema.ArrayType:
		items, ok := tree.AsArray(node)
		if !ok {
			return mismatch(at, desc), nil
		}
		branches := make([]branch, len(items))
		for i, item := range items {
			// Array elements always get their required properties checked.
			branches[i] = branch{node: item, at: at.Index(i), d: desc.Items, enforce: true}
		}
		return w.fanOut(ctx, branches)

	case *schema.ObjectType:
		obj, ok := tree.AsObject(node)
		if !ok {
			return mismatch(at, desc), nil
		}
		var errs []ValidationError
		if enforceRequired {
			for _, name := range desc.PropertyNames() {
				prop, _ := desc.Property(name)
				if !prop.Attrs().Required {
					continue
				}
				if _, present := obj.Get(name); !present {
					errs = append(errs, ValidationError{Path: at.Key(name), Reason: ReasonMissingRequired})
				}
			}
		}
		branches := make([]branch, 0, obj.Len())
		for _, key := range obj.Keys() {
			prop, declared := desc.Property(key)
			if !declared {
				branches = append(branches, branch{fixed: &ValidationError{Path: at.Key(key), Reason: ReasonUnknownProperty}})
				continue
			}
			value, _ := obj.Get(key)
			branches = append(branches, branch{node: value, at: at.Key(key), d: prop, enforce: enforceRequired})
		}
		children, err := w.fanOut(ctx, branches)
		if err != nil {
			return nil, err
		}
		return append(errs, children...), nil

	case *schema.RefType:
		return w.ref(ctx, node, at, desc, enforceRequired, refs)

	case *schema.StringType:
		return expect(node, tree.KindString, at, desc), nil
	case *schema.NumberType:
		return expect(node, tree.KindNumber, at, desc), nil
	case *schema.BooleanType:
		return expect(node, tree.KindBoolean, at, desc), nil

	case nil:
		return nil, fmt.Errorf("%w at %q", ErrNilDescriptor, at.Pointer())
	}
	return nil, fmt.Errorf("unsupported descriptor %T at %q", d, at.Pointer())
}

func (w *walker) ref(ctx context.Context, node any, at jsonpath.Path, desc *schema.RefType, enforceRequired bool, refs []string) ([]ValidationError, error) {
	if w.check != nil {
		verdict, err := w.check(ctx, node, desc.Ref, w.dict)
		if err != nil {
			return nil, fmt.Errorf("checking ref %q at %q: %w", desc.Ref, at.Pointer(), err)
		}
		switch verdict {
		case Valid:
			return nil, nil
		case Invalid:
			return []ValidationError{{Path: at, Reason: ReasonRefRejected, Ref: desc.Ref}}, nil
		case Defer:
			w.logger.Debug("ref check deferred", "ref", desc.Ref, "path", at.Pointer())
		default:
			return nil, fmt.Errorf("checking ref %q at %q: unknown verdict %d", desc.Ref, at.Pointer(), verdict)
		}
	}

	if slices.Contains(refs, desc.Ref) {
		return nil, fmt.Errorf("%w: %v at %q", ErrRefCycle, append(refs, desc.Ref), at.Pointer())
	}
	target, err := w.dict.Resolve(desc.Ref)
	if err != nil {
		return nil, fmt.Errorf("resolving ref at %q: %w", at.Pointer(), err)
	}
	return w.walk(ctx, node, at, target, enforceRequired, append(slices.Clip(refs), desc.Ref))
}

// fanOut walks every branch and concatenates the results in branch order.
func (w *walker) fanOut(ctx context.Context, branches []branch) ([]ValidationError, error) {
	results := make([][]ValidationError, len(branches))

	if w.sem == nil || len(branches) < 2 {
		for i, b := range branches {
			errs, err := w.run(ctx, b)
			if err != nil {
				return nil, err
			}
			results[i] = errs
		}
		return slices.Concat(results...), nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	failures := make([]error, len(branches))
	for i, b := range branches {
		// Run inline when no slot is free, so nested fan-outs never wait on
		// slots held by their own ancestors.
		if b.fixed == nil && w.sem.TryAcquire(1) {
			g.Go(func() error {
				defer w.sem.Release(1)
				errs, err := w.run(gctx, b)
				results[i], failures[i] = errs, err
				return err
			})
			continue
		}
		errs, err := w.run(gctx, b)
		if err != nil {
			failures[i] = err
			cancel()
			break
		}
		results[i] = errs
	}
	_ = g.Wait()
	if err := rootCause(failures); err != nil {
		return nil, err
	}
	return slices.Concat(results...), nil
}

// rootCause picks the error of the lowest failing branch, skipping the
// cancellations that the first failure caused in its siblings.
func rootCause(failures []error) error {
	var canceled error
	for _, err := range failures {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			if canceled == nil {
				canceled = err
			}
		default:
			return err
		}
	}
	return canceled
}

func (w *walker) run(ctx context.Context, b branch) ([]ValidationError, error) {
	if b.fixed != nil {
		return []ValidationError{*b.fixed}, nil
	}
	return w.walk(ctx, b.node, b.at, b.d, b.enforce, nil)
}

func mismatch(at jsonpath.Path, d schema.Descriptor) []ValidationError {
	return []ValidationError{{Path: at, Reason: ReasonTypeMismatch, Expected: d.Kind()}}
}

func expect(node any, kind tree.Kind, at jsonpath.Path, d schema.Descriptor) []ValidationError {
	if tree.KindOf(node) != kind {
		return mismatch(at, d)
	}
	return nil
}
