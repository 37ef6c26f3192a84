package validator

import (
	"log/slog"

	"github.com/aretw0/aniame/internal/logging"
	"github.com/aretw0/aniame/pkg/schema"
)

// Option configures a Validator.
type Option func(*Validator)

// WithDictionary sets the schemas that ref descriptors resolve against.
func WithDictionary(dict schema.Dictionary) Option {
	return func(v *Validator) {
		v.dict = dict
	}
}

// WithEnforceRequired toggles the required check at the top level (default: true).
// Elements of arrays are always checked for their required properties.
func WithEnforceRequired(enforce bool) Option {
	return func(v *Validator) {
		v.enforceRequired = enforce
	}
}

// WithRefChecker installs custom reference validation.
func WithRefChecker(check RefChecker) Option {
	return func(v *Validator) {
		v.check = check
	}
}

// WithConcurrency lets up to n goroutines validate sibling branches at once.
// Values below 2 keep validation on the calling goroutine. Error order does
// not depend on this setting.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		v.concurrency = n
	}
}

// WithLogger sets a structured logger for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

func (v *Validator) applyDefaults() {
	if v.logger == nil {
		v.logger = logging.NewNop()
	}
}
