package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidSchema is returned when a schema document is not a legal descriptor tree.
var ErrInvalidSchema = errors.New("invalid schema")

// ErrUnknownSchema is returned when a schema name is not in the dictionary.
var ErrUnknownSchema = errors.New("unknown schema")

// SchemaError describes the first defect found in a schema document.
type SchemaError struct {
	Schema  string // Dictionary entry, empty for standalone documents
	Pointer string // Location of the defect within the schema document
	Reason  string
}

func (e *SchemaError) Error() string {
	where := e.Pointer
	if where == "" {
		where = "/"
	}
	if e.Schema != "" {
		return fmt.Sprintf("schema %q at %s: %s", e.Schema, where, e.Reason)
	}
	return fmt.Sprintf("schema at %s: %s", where, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrInvalidSchema }
