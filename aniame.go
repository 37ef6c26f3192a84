package aniame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/aniame/internal/logging"
	"github.com/aretw0/aniame/pkg/indexer"
	"github.com/aretw0/aniame/pkg/observability"
	"github.com/aretw0/aniame/pkg/ports"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/traverse"
	"github.com/aretw0/aniame/pkg/tree"
	"github.com/aretw0/aniame/pkg/validator"
)

// ErrNoDictionary is returned by New when no schema source was configured.
var ErrNoDictionary = errors.New("no schema dictionary configured")

// Engine is the high-level entry point for the Aniame library.
// It owns a parsed dictionary and validates, indexes and walks data against it.
// An Engine is safe for concurrent use.
type Engine struct {
	dict        schema.Dictionary
	extra       schema.Dictionary
	dictPath    string
	loader      ports.SchemaLoader
	refCheck    validator.RefChecker
	logger      *slog.Logger
	metrics     *observability.Metrics
	concurrency int

	strict  *validator.Validator
	partial *validator.Validator
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDictionary adds already parsed schemas.
func WithDictionary(dict schema.Dictionary) Option {
	return func(e *Engine) {
		e.extra = dict
	}
}

// WithDictionaryFile reads a JSON or YAML dictionary document from path.
func WithDictionaryFile(path string) Option {
	return func(e *Engine) {
		e.dictPath = path
	}
}

// WithLoader reads every schema listed by l.
func WithLoader(l ports.SchemaLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithRefChecker sets the callback consulted at every ref location.
func WithRefChecker(check validator.RefChecker) Option {
	return func(e *Engine) {
		e.refCheck = check
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records every validation on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithConcurrency bounds the goroutines used by one validation.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// New initializes a new Engine. At least one of WithDictionary,
// WithDictionaryFile or WithLoader is required. Schemas from every source
// share one namespace and may reference each other.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{concurrency: 1}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	dict, err := eng.loadDictionary()
	if err != nil {
		return nil, err
	}
	eng.dict = dict
	eng.logger.Debug("dictionary loaded", "schemas", len(dict))

	common := []validator.Option{
		validator.WithDictionary(dict),
		validator.WithRefChecker(eng.refCheck),
		validator.WithConcurrency(eng.concurrency),
		validator.WithLogger(eng.logger),
	}
	eng.strict = validator.New(common...)
	eng.partial = validator.New(append(common, validator.WithEnforceRequired(false))...)
	return eng, nil
}

func (e *Engine) loadDictionary() (schema.Dictionary, error) {
	if e.extra == nil && e.dictPath == "" && e.loader == nil {
		return nil, ErrNoDictionary
	}

	raw := tree.NewOrderedMap()
	if e.dictPath != "" {
		data, err := os.ReadFile(e.dictPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read dictionary: %w", err)
		}
		doc, err := tree.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", e.dictPath, err)
		}
		obj, ok := tree.AsObject(doc)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an object of schemas", schema.ErrInvalidSchema, e.dictPath)
		}
		for _, name := range obj.Keys() {
			v, _ := obj.Get(name)
			raw.Set(name, v)
		}
	}
	if e.loader != nil {
		names, err := e.loader.ListSchemas()
		if err != nil {
			return nil, fmt.Errorf("failed to list schemas: %w", err)
		}
		for _, name := range names {
			if _, dup := raw.Get(name); dup {
				return nil, fmt.Errorf("schema %q defined twice", name)
			}
			data, err := e.loader.GetSchema(name)
			if err != nil {
				return nil, fmt.Errorf("failed to load schema %q: %w", name, err)
			}
			doc, err := tree.Decode(data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode schema %q: %w", name, err)
			}
			raw.Set(name, doc)
		}
	}

	dict, err := schema.ParseDictionary(raw, e.extra.Names()...)
	if err != nil {
		return nil, err
	}
	for name, d := range e.extra {
		if _, dup := dict[name]; dup {
			return nil, fmt.Errorf("schema %q defined twice", name)
		}
		dict[name] = d
	}
	return dict, nil
}

// Validate checks data against the named schema, enforcing required properties.
// Defects are reported through the Outcome; the error is reserved for
// unknown schemas, ref check failures and cancellation.
func (e *Engine) Validate(ctx context.Context, data any, schemaName string) (*validator.Outcome, error) {
	return e.run(ctx, e.strict, data, schemaName)
}

// ValidatePartial is Validate without required checks at the top level
// (required is still enforced inside arrays), e.g. for PATCH bodies.
func (e *Engine) ValidatePartial(ctx context.Context, data any, schemaName string) (*validator.Outcome, error) {
	return e.run(ctx, e.partial, data, schemaName)
}

// ValidateDescriptor checks data against an ad-hoc descriptor whose refs
// resolve through the engine's dictionary.
func (e *Engine) ValidateDescriptor(ctx context.Context, data any, d schema.Descriptor, enforceRequired bool) (*validator.Outcome, error) {
	v := e.strict
	if !enforceRequired {
		v = e.partial
	}
	return v.Validate(ctx, data, d)
}

func (e *Engine) run(ctx context.Context, v *validator.Validator, data any, schemaName string) (*validator.Outcome, error) {
	d, err := e.dict.Resolve(schemaName)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := v.Validate(ctx, data, d)
	dur := time.Since(start)
	e.metrics.Observe(schemaName, out, dur)
	if err != nil {
		e.logger.Debug("validation aborted", "schema", schemaName, "error", err)
		return nil, err
	}
	e.logger.Debug("validation finished", "schema", schemaName, "errors", len(out.Errors), "duration", dur)
	return out, nil
}

// Index returns the indexAs tags of the named schema.
func (e *Engine) Index(schemaName string, opts ...indexer.Option) (indexer.Result, error) {
	d, err := e.dict.Resolve(schemaName)
	if err != nil {
		return nil, err
	}
	return indexer.Index(d, opts...), nil
}

// References lists the data locations bound to ref descriptors of the named schema.
func (e *Engine) References(ctx context.Context, data any, schemaName string) ([]traverse.Reference, error) {
	d, err := e.dict.Resolve(schemaName)
	if err != nil {
		return nil, err
	}
	return traverse.CollectReferences(ctx, data, d, e.dict)
}

// Schemas returns the schema names in sorted order.
func (e *Engine) Schemas() []string {
	return e.dict.Names()
}

// Descriptor returns the root descriptor of the named schema.
func (e *Engine) Descriptor(name string) (schema.Descriptor, bool) {
	return e.dict.Lookup(name)
}

// Dictionary returns the engine's dictionary. It must not be modified.
func (e *Engine) Dictionary() schema.Dictionary {
	return e.dict
}
