package provider

import (
	"encoding/json"
	"fmt"
	"math"
)

// Optional returns the value stored under key. A nil container, an absent
// key and an explicit null all yield nil.
func Optional[T any](data map[string]any, key string) (*T, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, nil
	}
	if v, ok := v.(T); ok {
		return &v, nil
	}
	return nil, fmt.Errorf("%s: unexpected type: %T", key, v)
}

// Required is like Optional but an absent key is ErrMissingField.
// An explicit null is still nil.
func Required[T any](data map[string]any, key string) (*T, error) {
	if _, ok := data[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return Optional[T](data, key)
}

// OptionalInt is Optional for integer fields decoded as float64 or json.Number.
func OptionalInt(data map[string]any, key string) (*int64, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, err := toInt(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &n, nil
}

// RequiredInt is OptionalInt with an absent key reported as ErrMissingField.
func RequiredInt(data map[string]any, key string) (*int64, error) {
	if _, ok := data[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return OptionalInt(data, key)
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, err
		}
		return roundInt(f)
	case float64:
		return roundInt(x)
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("unexpected type: %T", v)
	}
}

// roundInt rejects values that do not fit in an int64, NaN included.
func roundInt(f float64) (int64, error) {
	r := math.Round(f)
	if !(r >= math.MinInt64 && r < math.MaxInt64) {
		return 0, fmt.Errorf("%v out of int64 range", f)
	}
	return int64(r), nil
}
