package sorting

import (
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// Direction is the requested sort direction.
type Direction string

// Direction values. An empty direction uses the key's default.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Key names a comparator.
type Key string

// Known sort keys.
const (
	KeyDate        Key = "date"
	KeyPrice       Key = "price"
	KeyName        Key = "name"
	KeyRating      Key = "rating"
	KeyPopularity  Key = "popularity"
	KeyHelpfulness Key = "helpfulness"
)

// FallbackKey is used for unknown or empty keys.
const FallbackKey = KeyDate

// Spec is one sort instruction.
type Spec struct {
	Key       Key       `json:"key" yaml:"key"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

type definition struct {
	build func() Comparator
	dir   Direction
}

// Library resolves sort keys to comparators.
type Library struct {
	defs   map[Key]definition
	locale language.Tag
}

// Option configures a Library.
type Option func(*Library)

// WithLocale sets the collation locale for text comparators.
func WithLocale(tag language.Tag) Option {
	return func(l *Library) { l.locale = tag }
}

// WithNumber registers a numeric comparator for key.
func WithNumber(key Key, f record.Field[float64], def Direction) Option {
	return func(l *Library) {
		l.defs[key] = definition{build: func() Comparator { return ByNumber(f) }, dir: def}
	}
}

// WithTime registers a temporal comparator for key.
func WithTime(key Key, f record.Field[time.Time], def Direction) Option {
	return func(l *Library) {
		l.defs[key] = definition{build: func() Comparator { return ByTime(f) }, dir: def}
	}
}

// WithText registers a collated text comparator for key.
func WithText(key Key, f record.Field[string], def Direction) Option {
	return func(l *Library) {
		l.defs[key] = definition{build: func() Comparator { return ByText(f, l.locale) }, dir: def}
	}
}

// NewLibrary creates a Library with the standard keys:
// date (dateAdded, newest first), price (asc), name (asc, collated),
// rating (desc), popularity (desc), helpfulness (helpfulCount, desc).
func NewLibrary(opts ...Option) *Library {
	l := &Library{defs: make(map[Key]definition), locale: language.English}
	defaults := []Option{
		WithTime(KeyDate, record.TimeField("dateAdded"), Desc),
		WithNumber(KeyPrice, record.NumberField("price"), Asc),
		WithText(KeyName, record.TextField("name"), Asc),
		WithNumber(KeyRating, record.NumberField("rating"), Desc),
		WithNumber(KeyPopularity, record.NumberField("popularity"), Desc),
		WithNumber(KeyHelpfulness, record.NumberField("helpfulCount"), Desc),
	}
	for _, o := range append(defaults, opts...) {
		o(l)
	}
	return l
}

// Known reports whether key has a registered comparator.
func (l *Library) Known(key Key) bool {
	_, ok := l.defs[key]
	return ok
}

// Keys returns the registered keys in sorted order.
func (l *Library) Keys() []Key {
	keys := make([]Key, 0, len(l.defs))
	for k := range l.defs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Comparator returns a directed comparator for spec.
// Unknown keys resolve to FallbackKey; an empty or unrecognized direction uses the key default.
func (l *Library) Comparator(spec Spec) Comparator {
	def, ok := l.defs[spec.Key]
	if !ok {
		def = l.defs[FallbackKey]
	}
	c := def.build()

	dir := spec.Direction
	if dir != Asc && dir != Desc {
		dir = def.dir
	}
	if dir == Desc {
		return Reverse(c)
	}
	return c
}

// Apply returns a stably sorted copy of records. The input is never mutated.
// Multiple specs break ties left to right; no specs sorts by FallbackKey.
func (l *Library) Apply(records []record.Record, specs ...Spec) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)
	if len(out) < 2 {
		return out
	}
	if len(specs) == 0 {
		specs = []Spec{{Key: FallbackKey}}
	}

	cs := make([]Comparator, len(specs))
	for i, s := range specs {
		cs[i] = l.Comparator(s)
	}
	slices.SortStableFunc(out, Chain(cs...))
	return out
}
