package dinekit

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kailas-cloud/dinekit/internal/domain"
	"github.com/kailas-cloud/dinekit/internal/domain/aggregate"
	domcart "github.com/kailas-cloud/dinekit/internal/domain/cart"
	"github.com/kailas-cloud/dinekit/internal/domain/filter"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
	"github.com/kailas-cloud/dinekit/internal/domain/slot"
)

// Record is one catalog entry. Attrs is a private copy.
type Record struct {
	ID    string
	Attrs map[string]any
}

func recordFromDomain(r record.Record) Record {
	return Record{ID: r.ID(), Attrs: r.Attrs()}
}

// Direction is a sort direction. The empty direction uses the key's default.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Criterion is one filter condition for BrowseBuilder.Where.
// Construction errors surface when the query runs.
type Criterion struct {
	build func() (filter.Criterion, error)
}

// Text matches records whose fields contain query, case-insensitively.
// An empty query matches everything.
func Text(query string, fields ...string) Criterion {
	return Criterion{build: func() (filter.Criterion, error) {
		fs := make([]record.Field[string], len(fields))
		for i, f := range fields {
			fs[i] = record.TextField(f)
		}
		return filter.NewText(query, fs...)
	}}
}

// Range matches records whose numeric field lies in [lo, hi]. A nil bound is open.
func Range(field string, lo, hi *float64) Criterion {
	return Criterion{build: func() (filter.Criterion, error) {
		return filter.NewRange(record.NumberField(field), lo, hi)
	}}
}

// Between is Range with both bounds set.
func Between(field string, lo, hi float64) Criterion {
	return Range(field, &lo, &hi)
}

// AtLeast is Range with only a lower bound.
func AtLeast(field string, lo float64) Criterion {
	return Range(field, &lo, nil)
}

// AtMost is Range with only an upper bound.
func AtMost(field string, hi float64) Criterion {
	return Range(field, nil, &hi)
}

// OneOf matches records whose field shares at least one value with allowed.
// No allowed values match everything.
func OneOf(field string, allowed ...string) Criterion {
	return Criterion{build: func() (filter.Criterion, error) {
		return filter.NewSet(record.StringsField(field), allowed...)
	}}
}

// Flag matches records whose boolean field equals expected. An absent flag reads as false.
func Flag(field string, expected bool) Criterion {
	return Criterion{build: func() (filter.Criterion, error) {
		return filter.NewBoolean(record.BoolField(field), expected)
	}}
}

func (c Criterion) resolve() (filter.Criterion, error) {
	if c.build == nil {
		return filter.Criterion{}, nil
	}
	return c.build()
}

// PriceBand is a closed price range used by Summarize.
type PriceBand struct {
	Min float64
	Max float64
}

// Bucket is one partition of a summary.
type Bucket struct {
	Label      string
	Count      int
	Percentage float64
}

// Summary holds aggregate numbers over a whole collection.
type Summary struct {
	Total int

	Ratings       []Bucket
	RatedCount    int
	AverageRating float64

	PriceBands []Bucket
	Unbanded   int

	Categories []Bucket

	PricedCount  int
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
	TotalValue   float64
	TotalSavings float64
}

func bandsToDomain(bands []PriceBand) ([]aggregate.Band, error) {
	out := make([]aggregate.Band, len(bands))
	for i, b := range bands {
		if b.Min > b.Max {
			return nil, fmt.Errorf("%w: price band %v-%v is inverted", domain.ErrInvalidRequest, b.Min, b.Max)
		}
		out[i] = aggregate.NewBand(b.Min, b.Max)
	}
	return out, nil
}

func bucketsFromDomain(bs []aggregate.Bucket) []Bucket {
	out := make([]Bucket, len(bs))
	for i, b := range bs {
		out[i] = Bucket{Label: b.Label, Count: b.Count, Percentage: b.Percentage()}
	}
	return out
}

func summaryFromDomain(r aggregate.Result) Summary {
	return Summary{
		Total:         r.Total,
		Ratings:       bucketsFromDomain(r.Ratings),
		RatedCount:    r.RatedCount,
		AverageRating: r.AverageRating,
		PriceBands:    bucketsFromDomain(r.PriceBands),
		Unbanded:      r.Unbanded,
		Categories:    bucketsFromDomain(r.Categories),
		PricedCount:   r.PricedCount,
		AveragePrice:  r.AveragePrice,
		MinPrice:      r.MinPrice,
		MaxPrice:      r.MaxPrice,
		TotalValue:    r.TotalValue,
		TotalSavings:  r.TotalSavings,
	}
}

// CartLine is one distinct item in a cart.
type CartLine struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// Cart is a snapshot of a cart. Line amounts and Subtotal are exact;
// Total is Subtotal rounded to cents.
type Cart struct {
	ID       string
	Lines    []CartLine
	Subtotal decimal.Decimal
	Total    decimal.Decimal
	Count    int
	Quantity int
}

func cartFromDomain(id string, s domcart.Snapshot) Cart {
	lines := make([]CartLine, len(s.Entries))
	for i, e := range s.Entries {
		lines[i] = CartLine{
			ItemID:    e.ItemID,
			Name:      e.Name,
			UnitPrice: e.UnitPrice,
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal(),
		}
	}
	return Cart{ID: id, Lines: lines, Subtotal: s.Subtotal, Total: s.Total, Count: s.Count, Quantity: s.Quantity}
}

// Quote is a checkout summary. Amounts are rounded to cents.
type Quote struct {
	CartID   string
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Delivery decimal.Decimal
	Total    decimal.Decimal
	Count    int
	Quantity int
}

func quoteFromDomain(id string, q domcart.Quote) Quote {
	return Quote{
		CartID:   id,
		Subtotal: q.Subtotal,
		Tax:      q.Tax,
		Delivery: q.Delivery,
		Total:    q.Total,
		Count:    q.Count,
		Quantity: q.Quantity,
	}
}

// Slot is one bookable reservation start time.
type Slot struct {
	Time      time.Time
	Label     string
	Available bool
	Popular   bool
}

func slotsFromDomain(ts []slot.TimeSlot) []Slot {
	out := make([]Slot, len(ts))
	for i, s := range ts {
		out[i] = Slot{Time: s.Time, Label: s.Label, Available: s.IsAvailable, Popular: s.IsPopular}
	}
	return out
}
