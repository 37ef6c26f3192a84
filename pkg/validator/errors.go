package validator

import (
	"errors"
	"fmt"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/schema"
)

// ErrNilDescriptor is returned when validation reaches a missing descriptor.
var ErrNilDescriptor = errors.New("nil descriptor")

// ErrRefCycle is returned when references loop back to themselves without
// consuming any data, e.g. a schema "a" defined as a ref to "a".
var ErrRefCycle = errors.New("reference cycle")

// Reason classifies a structural defect.
type Reason string

const (
	ReasonTypeMismatch    Reason = "type_mismatch"
	ReasonMissingRequired Reason = "missing_required"
	ReasonUnknownProperty Reason = "unknown_property"
	ReasonRefRejected     Reason = "ref_rejected"
)

func (r Reason) describe() string {
	switch r {
	case ReasonTypeMismatch:
		return "type mismatch"
	case ReasonMissingRequired:
		return "missing required property"
	case ReasonUnknownProperty:
		return "unknown property"
	case ReasonRefRejected:
		return "reference rejected"
	default:
		return string(r)
	}
}

// ValidationError is a single structural defect of the data.
type ValidationError struct {
	Path     jsonpath.Path `json:"path"`
	Reason   Reason        `json:"reason"`
	Expected schema.Kind   `json:"expected,omitempty"` // Set for type mismatches
	Ref      string        `json:"ref,omitempty"`      // Set for rejected references
}

func (e *ValidationError) Error() string {
	where := e.Path.Pointer()
	if where == "" {
		where = "/"
	}
	switch {
	case e.Expected != "":
		return fmt.Sprintf("%s: %s (expected %s)", where, e.Reason.describe(), e.Expected)
	case e.Ref != "":
		return fmt.Sprintf("%s: %s (%s)", where, e.Reason.describe(), e.Ref)
	}
	return fmt.Sprintf("%s: %s", where, e.Reason.describe())
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
