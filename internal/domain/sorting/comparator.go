package sorting

import (
	"cmp"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// Comparator orders two records in the key's natural (ascending) order:
// negative if a sorts before b, zero on ties, positive otherwise.
type Comparator func(a, b record.Record) int

// ByNumber orders by a numeric attribute. Missing values read as 0.
func ByNumber(f record.Field[float64]) Comparator {
	return func(a, b record.Record) int {
		av, _ := f.Get(a)
		bv, _ := f.Get(b)
		return cmp.Compare(av, bv)
	}
}

// ByTime orders by a temporal attribute, oldest first. Missing values read as the zero time.
func ByTime(f record.Field[time.Time]) Comparator {
	return func(a, b record.Record) int {
		av, _ := f.Get(a)
		bv, _ := f.Get(b)
		return av.Compare(bv)
	}
}

// ByText orders by a textual attribute using the collation rules of tag.
// The returned comparator owns a collator and must not be shared across goroutines.
func ByText(f record.Field[string], tag language.Tag) Comparator {
	col := collate.New(tag)
	return func(a, b record.Record) int {
		av, _ := f.Get(a)
		bv, _ := f.Get(b)
		return col.CompareString(av, bv)
	}
}

// Reverse negates a comparator. Ties stay ties, so stable sorts keep input order.
func Reverse(c Comparator) Comparator {
	return func(a, b record.Record) int {
		return -c(a, b)
	}
}

// Chain orders by the first comparator, breaking ties with the following ones.
func Chain(cs ...Comparator) Comparator {
	return func(a, b record.Record) int {
		for _, c := range cs {
			if n := c(a, b); n != 0 {
				return n
			}
		}
		return 0
	}
}
