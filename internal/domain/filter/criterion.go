package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/dinekit/internal/domain"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// Kind is the filter dimension a Criterion describes.
type Kind string

// Criterion kinds.
const (
	KindText    Kind = "text"
	KindRange   Kind = "range"
	KindSet     Kind = "setMembership"
	KindBoolean Kind = "boolean"
)

// Criterion is an immutable user-selected filter condition.
// The zero value is a no-op.
type Criterion struct {
	kind Kind

	textFields []record.Field[string]
	query      string

	number record.Field[float64]
	lo, hi *float64

	values  record.Field[[]string]
	allowed map[string]struct{}

	flag     record.Field[bool]
	expected bool
}

// NewText creates a case-insensitive substring criterion over one or more fields.
func NewText(query string, fields ...record.Field[string]) (Criterion, error) {
	if len(fields) == 0 {
		return Criterion{}, fmt.Errorf("%w: text criterion needs at least one field", domain.ErrInvalidCriterion)
	}
	for i, f := range fields {
		if !f.Valid() {
			return Criterion{}, fmt.Errorf("%w: text criterion field %d is missing", domain.ErrInvalidCriterion, i)
		}
	}
	cp := make([]record.Field[string], len(fields))
	copy(cp, fields)
	return Criterion{kind: KindText, textFields: cp, query: strings.TrimSpace(query)}, nil
}

// NewRange creates an inclusive numeric range criterion. A nil bound is open;
// both nil means no selection.
func NewRange(f record.Field[float64], lo, hi *float64) (Criterion, error) {
	if !f.Valid() {
		return Criterion{}, fmt.Errorf("%w: range criterion field is missing", domain.ErrInvalidCriterion)
	}
	return Criterion{kind: KindRange, number: f, lo: copyFloat(lo), hi: copyFloat(hi)}, nil
}

// NewSet creates a set-membership criterion. No allowed values means no selection.
func NewSet(f record.Field[[]string], allowed ...string) (Criterion, error) {
	if !f.Valid() {
		return Criterion{}, fmt.Errorf("%w: set criterion field is missing", domain.ErrInvalidCriterion)
	}
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return Criterion{kind: KindSet, values: f, allowed: set}, nil
}

// NewBoolean creates a flag criterion.
func NewBoolean(f record.Field[bool], expected bool) (Criterion, error) {
	if !f.Valid() {
		return Criterion{}, fmt.Errorf("%w: boolean criterion field is missing", domain.ErrInvalidCriterion)
	}
	return Criterion{kind: KindBoolean, flag: f, expected: expected}, nil
}

// Must panics if err is non-nil. Intended for criteria built from constants.
func Must(c Criterion, err error) Criterion {
	if err != nil {
		panic(err)
	}
	return c
}

// Kind returns the criterion kind.
func (c Criterion) Kind() Kind { return c.kind }

// Query returns the text query.
func (c Criterion) Query() string { return c.query }

// Bounds returns the range bounds.
func (c Criterion) Bounds() (lo, hi *float64) { return copyFloat(c.lo), copyFloat(c.hi) }

// Allowed returns the allowed set values in sorted order.
func (c Criterion) Allowed() []string {
	out := make([]string, 0, len(c.allowed))
	for v := range c.allowed {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Expected returns the expected flag value.
func (c Criterion) Expected() bool { return c.expected }

// Fields returns the attribute names the criterion reads.
func (c Criterion) Fields() []string {
	switch c.kind {
	case KindText:
		names := make([]string, len(c.textFields))
		for i, f := range c.textFields {
			names[i] = f.Name()
		}
		return names
	case KindRange:
		return []string{c.number.Name()}
	case KindSet:
		return []string{c.values.Name()}
	case KindBoolean:
		return []string{c.flag.Name()}
	default:
		return nil
	}
}

// IsTrivial reports whether the criterion carries no selection and accepts everything.
func (c Criterion) IsTrivial() bool {
	switch c.kind {
	case KindText:
		return c.query == ""
	case KindRange:
		return c.lo == nil && c.hi == nil
	case KindSet:
		return len(c.allowed) == 0
	case KindBoolean:
		return false
	default:
		return true
	}
}

// Predicate returns the record test for this criterion. Trivial criteria yield Always.
func (c Criterion) Predicate() Predicate {
	if c.IsTrivial() {
		return Always
	}
	switch c.kind {
	case KindText:
		return TextContains(c.query, c.textFields...)
	case KindRange:
		return InRange(c.number, c.lo, c.hi)
	case KindSet:
		return InSet(c.values, c.allowed)
	case KindBoolean:
		return Equals(c.flag, c.expected)
	default:
		return Always
	}
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
