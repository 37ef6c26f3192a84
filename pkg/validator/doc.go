/*
Package validator checks decoded data against schema descriptors.

Validation walks the data and the descriptor in lockstep and never stops at
the first defect: every location where the data deviates from the schema is
reported as a ValidationError in the Outcome, in traversal order.

	outcome, err := validator.ValidateNamed(ctx, data, "person",
	    validator.WithDictionary(dict),
	)
	if err != nil {
	    // the schema or a RefChecker is broken, not the data
	}
	for _, p := range outcome.Pointers() {
	    fmt.Println("invalid:", p)
	}

# Rules

  - Objects are closed: properties absent from the descriptor are reported.
  - Missing required properties are reported when required checking is on.
    Turning it off (WithEnforceRequired(false)) only affects objects outside
    arrays: every array element is checked in full.
  - Refs follow the dictionary and keep the current required setting.

# References

A RefChecker replaces dictionary resolution for ref descriptors. It returns
Valid to accept a value as is, Invalid to reject it, or Defer to fall back to
structural validation against the referenced schema. Checkers may block, and
with WithConcurrency they may be called from several goroutines at once.
*/
package validator
