package validator

import (
	"context"

	"github.com/aretw0/aniame/pkg/schema"
)

// Verdict is the answer of a RefChecker.
type Verdict int

const (
	// Defer hands the node back to structural validation against the
	// referenced schema, as if no checker was configured.
	Defer Verdict = iota
	// Valid accepts the node without looking inside it.
	Valid
	// Invalid records a defect at the node's path.
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Defer:
		return "defer"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// RefChecker decides how a value found at a ref descriptor is validated.
// It may block (e.g. on a database lookup) and should honour ctx.
// A non-nil error aborts the whole validation.
type RefChecker func(ctx context.Context, node any, ref string, dict schema.Dictionary) (Verdict, error)
