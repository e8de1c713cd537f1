package dispatch

import (
	"encoding/json"
	"math"

	"github.com/dgallion1/pdfreader/internal/document"
)

// maxExactInt is the largest integer a float64 represents exactly.
const maxExactInt = 1 << 53

// Argument accessors. A JSON null is treated the same as an absent key.
// Wrong types are rejected, never coerced.

func stringArg(args map[string]any, key string) (string, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, document.Errorf(document.EINVALID, "argument %q must be a string, got %T", key, v)
	}
	return s, true, nil
}

func boolArg(args map[string]any, key string, def bool) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, document.Errorf(document.EINVALID, "argument %q must be a boolean, got %T", key, v)
	}
	return b, nil
}

// intArg reads an integral number. Clients send JSON numbers, which decode
// as float64; fractional values are rejected.
func intArg(args map[string]any, key string) (int, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return n, true, nil
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false, document.Errorf(document.EINVALID, "argument %q must be a number, got %q", key, n.String())
		}
		f = parsed
	default:
		return 0, false, document.Errorf(document.EINVALID, "argument %q must be a number, got %T", key, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false, document.Errorf(document.EINVALID, "argument %q must be an integer, got %v", key, f)
	}
	if math.Abs(f) > maxExactInt {
		return 0, false, document.Errorf(document.EINVALID, "argument %q is out of range: %v", key, f)
	}
	return int(f), true, nil
}
