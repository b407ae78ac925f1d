package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field is a typed accessor for one record attribute.
// Criteria and comparators receive a Field instead of reading attributes by name.
type Field[T any] struct {
	name string
	get  func(Record) (T, bool)
}

// NewField creates an accessor from a custom getter (derived or computed attributes).
func NewField[T any](name string, get func(Record) (T, bool)) Field[T] {
	return Field[T]{name: name, get: get}
}

// Name returns the attribute name the accessor reads.
func (f Field[T]) Name() string { return f.name }

// Valid reports whether the accessor is usable.
func (f Field[T]) Valid() bool { return f.name != "" && f.get != nil }

// Get reads the attribute. ok is false when it is absent or of the wrong shape.
func (f Field[T]) Get(r Record) (T, bool) {
	if f.get == nil {
		var zero T
		return zero, false
	}
	return f.get(r)
}

// String implements fmt.Stringer.
func (f Field[T]) String() string { return f.name }

// NumberField reads a numeric attribute. Integer, float and numeric-string values are accepted.
func NumberField(name string) Field[float64] {
	return NewField(name, func(r Record) (float64, bool) {
		v, ok := r.Attr(name)
		if !ok {
			return 0, false
		}
		return toFloat(v)
	})
}

// TextField reads a textual attribute.
func TextField(name string) Field[string] {
	return NewField(name, func(r Record) (string, bool) {
		v, ok := r.Attr(name)
		if !ok {
			return "", false
		}
		switch s := v.(type) {
		case string:
			return s, true
		case fmt.Stringer:
			return s.String(), true
		default:
			return "", false
		}
	})
}

// BoolField reads a boolean flag.
func BoolField(name string) Field[bool] {
	return NewField(name, func(r Record) (bool, bool) {
		v, ok := r.Attr(name)
		if !ok {
			return false, false
		}
		b, ok := v.(bool)
		return b, ok
	})
}

// StringsField reads a single- or multi-valued textual attribute.
// A scalar string is returned as a one-element slice.
func StringsField(name string) Field[[]string] {
	return NewField(name, func(r Record) ([]string, bool) {
		v, ok := r.Attr(name)
		if !ok {
			return nil, false
		}
		switch vals := v.(type) {
		case string:
			return []string{vals}, true
		case []string:
			return vals, true
		case []any:
			out := make([]string, 0, len(vals))
			for _, e := range vals {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out, true
		default:
			return nil, false
		}
	})
}

// timeLayouts are tried in order when a temporal attribute is a string.
var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// TimeField reads a temporal attribute (time.Time or an RFC 3339 / YYYY-MM-DD string).
func TimeField(name string) Field[time.Time] {
	return NewField(name, func(r Record) (time.Time, bool) {
		v, ok := r.Attr(name)
		if !ok {
			return time.Time{}, false
		}
		switch t := v.(type) {
		case time.Time:
			return t, true
		case string:
			for _, layout := range timeLayouts {
				if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
					return parsed, true
				}
			}
			return time.Time{}, false
		default:
			return time.Time{}, false
		}
	})
}

// DecimalField reads a monetary attribute exactly. Floats use their shortest
// decimal representation, so 8.1 reads as 8.1 and not 8.0999999.
func DecimalField(name string) Field[decimal.Decimal] {
	return NewField(name, func(r Record) (decimal.Decimal, bool) {
		v, ok := r.Attr(name)
		if !ok {
			return decimal.Decimal{}, false
		}
		switch n := v.(type) {
		case decimal.Decimal:
			return n, true
		case float64:
			return decimal.NewFromFloat(n), true
		case float32:
			return decimal.NewFromFloat32(n), true
		case int:
			return decimal.NewFromInt(int64(n)), true
		case int64:
			return decimal.NewFromInt(n), true
		case json.Number:
			d, err := decimal.NewFromString(n.String())
			return d, err == nil
		case string:
			d, err := decimal.NewFromString(strings.TrimSpace(n))
			return d, err == nil
		default:
			return decimal.Decimal{}, false
		}
	})
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
