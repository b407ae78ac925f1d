package filter

import (
	"sort"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// Compose ANDs the non-trivial criteria into one predicate.
func Compose(criteria ...Criterion) Predicate {
	preds := make([]Predicate, 0, len(criteria))
	for _, c := range criteria {
		if c.IsTrivial() {
			continue
		}
		preds = append(preds, c.Predicate())
	}
	return All(preds...)
}

// Apply returns the records passing every non-trivial criterion, in input order.
// The input slice is not modified; the result is never nil.
func Apply(records []record.Record, criteria ...Criterion) []record.Record {
	pred := Compose(criteria...)
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Active is the current selection keyed by criterion name.
// Treat it as immutable: With and Without return new sets.
type Active map[string]Criterion

// With returns a copy of the set with name bound to c.
func (a Active) With(name string, c Criterion) Active {
	out := make(Active, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[name] = c
	return out
}

// Without returns a copy of the set without name.
func (a Active) Without(name string) Active {
	out := make(Active, len(a))
	for k, v := range a {
		if k != name {
			out[k] = v
		}
	}
	return out
}

// List returns the criteria ordered by name.
func (a Active) List() []Criterion {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]Criterion, len(names))
	for i, n := range names {
		out[i] = a[n]
	}
	return out
}

// Apply filters records with every criterion in the set.
func (a Active) Apply(records []record.Record) []record.Record {
	return Apply(records, a.List()...)
}
