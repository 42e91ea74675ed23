package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Coerce converts one raw JSON value into the target type.
//
// A nil value yields nil. A sequence is coerced element by element against the same
// target. Primitives are lenient: a value of the wrong JSON type is returned as-is.
// Timestamps must match TimeLayout or RFC 3339. Objects coerced against an entity type build a new
// instance of that entity; a scalar where an entity was required is ErrUnexpectedShape.
// A nil target, or a type that is not an entity schema, returns the value as plain
// JSON data.
func Coerce(raw any, target Type) (any, error) {
	if raw == nil {
		return nil, nil
	}

	if seq, ok := raw.([]any); ok {
		out := make([]any, len(seq))

		for i, e := range seq {
			v, err := Coerce(e, target)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			out[i] = v
		}

		return out, nil
	}

	if target == nil {
		return plain(raw), nil
	}

	switch target.Kind() {
	case KindString, KindBool:
		return raw, nil
	case KindInt:
		return coerceInt(raw), nil
	case KindFloat:
		return coerceFloat(raw), nil
	case KindTime:
		return coerceTime(raw)
	case KindEntity:
		ent, ok := target.(entity)
		if !ok {
			return plain(raw), nil
		}

		if ent.owns(raw) {
			return raw, nil
		}

		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, shapeError(ent.Name()+" object", raw)
		}

		return ent.build(obj)
	default:
		return plain(raw), nil
	}
}

func coerceInt(raw any) any {
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}

		if f, err := n.Float64(); err == nil {
			if i, ok := integral(f); ok {
				return i
			}

			return f
		}
	case float64:
		if i, ok := integral(n); ok {
			return i
		}
	case int:
		return int64(n)
	}

	return raw
}

// integral reports f as an int64 when it has no fractional part and fits the range.
func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

func coerceFloat(raw any) any {
	switch n := raw.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}

	return raw
}

func coerceTime(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		ts, err := time.Parse(TimeLayout, v)
		if err != nil {
			ts, err = time.Parse(time.RFC3339Nano, v)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %q does not match %s", ErrInvalidFormat, v, TimeLayout)
		}

		return ts.UTC(), nil
	default:
		return nil, fmt.Errorf("%w: expected timestamp string, got %s", ErrInvalidFormat, describe(raw))
	}
}

// plain normalises decoder output: json.Number becomes int64 when integral, else float64.
func plain(raw any) any {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}

		if f, err := v.Float64(); err == nil {
			return f
		}

		return v.String()
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, e := range v {
			out[key] = plain(e)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = plain(e)
		}

		return out
	default:
		return raw
	}
}
