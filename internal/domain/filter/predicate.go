package filter

import (
	"strings"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// Predicate tests a single record against a single condition.
type Predicate func(record.Record) bool

// Always accepts every record.
func Always(record.Record) bool { return true }

// TextContains matches when ANY of the fields contains query, case-insensitively.
// Records missing all fields do not match.
func TextContains(query string, fields ...record.Field[string]) Predicate {
	q := strings.ToLower(query)
	return func(r record.Record) bool {
		for _, f := range fields {
			v, ok := f.Get(r)
			if ok && strings.Contains(strings.ToLower(v), q) {
				return true
			}
		}
		return false
	}
}

// InRange matches min <= value <= max. A nil bound is open.
// Records missing the field do not match.
func InRange(f record.Field[float64], lo, hi *float64) Predicate {
	return func(r record.Record) bool {
		v, ok := f.Get(r)
		if !ok {
			return false
		}
		if lo != nil && v < *lo {
			return false
		}
		if hi != nil && v > *hi {
			return false
		}
		return true
	}
}

// InSet matches when the field value, or any element of a multi-valued field, is allowed.
func InSet(f record.Field[[]string], allowed map[string]struct{}) Predicate {
	return func(r record.Record) bool {
		vals, ok := f.Get(r)
		if !ok {
			return false
		}
		for _, v := range vals {
			if _, hit := allowed[v]; hit {
				return true
			}
		}
		return false
	}
}

// Equals matches a boolean flag. An absent flag reads as false.
func Equals(f record.Field[bool], expected bool) Predicate {
	return func(r record.Record) bool {
		v, _ := f.Get(r)
		return v == expected
	}
}

// All combines predicates with logical AND. No predicates means Always.
func All(preds ...Predicate) Predicate {
	if len(preds) == 0 {
		return Always
	}
	return func(r record.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
