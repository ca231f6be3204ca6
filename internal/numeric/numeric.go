// Package numeric parses the abbreviated numbers used by the GE catalogue,
// e.g. "1.2k", "3M" or "250b".
package numeric

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrParse is returned when a value is not a number in the expected format.
var ErrParse = errors.New("parse error")

var scales = map[byte]decimal.Decimal{
	'K': decimal.NewFromInt(1_000),
	'M': decimal.NewFromInt(1_000_000),
	'B': decimal.NewFromInt(1_000_000_000),
}

// Normalize converts v to a float64. Numeric values pass through unchanged,
// strings go through ParseAbbreviated.
func Normalize(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case json.Number:
		return ParseAbbreviated(x.String())
	case string:
		return ParseAbbreviated(x)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrParse, v)
	}
}

// ParseAbbreviated parses s, honouring a K/M/B scale suffix. A bare scale
// letter ("K") is the scale itself.
func ParseAbbreviated(s string) (float64, error) {
	x := strings.ToUpper(strings.TrimSpace(s))
	x = strings.ReplaceAll(x, ",", "")
	if x == "" {
		return 0, fmt.Errorf("%w: empty value", ErrParse)
	}

	scale := decimal.NewFromInt(1)
	if m, ok := scales[x[len(x)-1]]; ok {
		scale = m
		x = strings.TrimSpace(x[:len(x)-1])
		if x == "" {
			return scale.InexactFloat64(), nil
		}
	}

	d, err := decimal.NewFromString(x)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrParse, s)
	}
	return d.Mul(scale).InexactFloat64(), nil
}

// ParsePercent parses a signed percentage such as "-32.0%" or "+1.0%".
func ParsePercent(s string) (float64, error) {
	x := strings.TrimSpace(s)
	x = strings.TrimSuffix(x, "%")
	x = strings.ReplaceAll(strings.TrimSpace(x), ",", "")
	d, err := decimal.NewFromString(x)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a percentage", ErrParse, s)
	}
	return d.InexactFloat64(), nil
}
