package refcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/aretw0/aniame/pkg/ports"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
	"github.com/aretw0/aniame/pkg/validator"
)

// ForeignKey returns a RefChecker that resolves scalar ref values against
// store. Strings and integers are looked up under the ref's schema name,
// objects defer to structural validation, and any other value is invalid.
func ForeignKey(store ports.ReferenceStore) validator.RefChecker {
	return func(ctx context.Context, node any, ref string, _ schema.Dictionary) (validator.Verdict, error) {
		if tree.KindOf(node) == tree.KindObject {
			return validator.Defer, nil
		}
		key, ok := Key(node)
		if !ok {
			return validator.Invalid, nil
		}
		found, err := store.Exists(ctx, ref, key)
		if err != nil {
			return validator.Defer, fmt.Errorf("refcheck: lookup %s/%s: %w", ref, key, err)
		}
		if found {
			return validator.Valid, nil
		}
		return validator.Invalid, nil
	}
}

// Key renders a string or integral value as a lookup key.
func Key(node any) (string, bool) {
	switch v := node.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v), true
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), true
	case float64:
		return floatKey(v)
	case float32:
		return floatKey(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		if f, err := v.Float64(); err == nil {
			return floatKey(f)
		}
	}
	return "", false
}

func floatKey(f float64) (string, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return "", false
	}
	return strconv.FormatInt(int64(f), 10), true
}

// Chain combines checkers: the first verdict other than Defer wins.
func Chain(checkers ...validator.RefChecker) validator.RefChecker {
	return func(ctx context.Context, node any, ref string, dict schema.Dictionary) (validator.Verdict, error) {
		for _, check := range checkers {
			v, err := check(ctx, node, ref, dict)
			if err != nil || v != validator.Defer {
				return v, err
			}
		}
		return validator.Defer, nil
	}
}
