package validator

import (
	"github.com/aretw0/aniame/pkg/jsonpath"
)

// Outcome is the result of one validation pass. Errors are in traversal order.
type Outcome struct {
	Errors []ValidationError `json:"errors"`
}

// Success reports whether no defect was found.
func (o *Outcome) Success() bool {
	return len(o.Errors) == 0
}

// ErrorPaths returns the location of every defect.
func (o *Outcome) ErrorPaths() []jsonpath.Path {
	paths := make([]jsonpath.Path, len(o.Errors))
	for i, e := range o.Errors {
		paths[i] = e.Path
	}
	return paths
}

// Pointers returns the error paths as RFC 6901 pointers.
func (o *Outcome) Pointers() []string {
	out := make([]string, len(o.Errors))
	for i, e := range o.Errors {
		out[i] = e.Path.Pointer()
	}
	return out
}

// Arrays returns the error paths as arrays of property names and indexes.
func (o *Outcome) Arrays() [][]any {
	out := make([][]any, len(o.Errors))
	for i, e := range o.Errors {
		out[i] = e.Path.Values()
	}
	return out
}

// Err returns nil on success and an *AggregateError otherwise.
func (o *Outcome) Err() error {
	if o.Success() {
		return nil
	}
	errs := make([]error, len(o.Errors))
	for i := range o.Errors {
		errs[i] = &o.Errors[i]
	}
	return &AggregateError{Errors: errs}
}
