package aggregate

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

// RatingLevels is the number of rating histogram buckets (1..5).
const RatingLevels = 5

// Band is a closed price range [Min, Max].
type Band struct {
	Label string
	Min   float64
	Max   float64
}

// NewBand creates a band labelled "min-max".
func NewBand(lo, hi float64) Band {
	return Band{Label: fmt.Sprintf("%s-%s", formatBound(lo), formatBound(hi)), Min: lo, Max: hi}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Spec declares which attributes the calculator reads.
type Spec struct {
	Rating        record.Field[float64]
	Price         record.Field[float64]
	OriginalPrice record.Field[float64]
	Discount      record.Field[float64]
	Category      record.Field[string]
	PriceBands    []Band
}

// DefaultSpec reads rating, price, originalPrice, discount and category.
func DefaultSpec(bands ...Band) Spec {
	return Spec{
		Rating:        record.NumberField("rating"),
		Price:         record.NumberField("price"),
		OriginalPrice: record.NumberField("originalPrice"),
		Discount:      record.NumberField("discount"),
		Category:      record.TextField("category"),
		PriceBands:    bands,
	}
}

// Bucket is a named partition. The percentage is derived from the count on read.
type Bucket struct {
	Label string
	Count int
	total int
}

// Percentage returns Count as a share of the bucket's population, 0 for an empty population.
func (b Bucket) Percentage() float64 {
	return percentage(b.Count, b.total)
}

// DisplayPercentage returns the percentage rounded to a whole number.
func (b Bucket) DisplayPercentage() int {
	return int(math.Round(b.Percentage()))
}

// MarshalJSON renders the derived percentage alongside the count.
func (b Bucket) MarshalJSON() ([]byte, error) {
	type wire struct {
		Label      string  `json:"label"`
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}
	return json.Marshal(wire{b.Label, b.Count, b.Percentage()}) //nolint:wrapcheck // plain delegation
}

// Result holds the summary numbers for a collection.
// Rating and category percentages and AveragePrice are taken over Total;
// price band percentages over the banded records.
type Result struct {
	Total int `json:"total"`

	Ratings       []Bucket `json:"ratings"`
	RatedCount    int      `json:"rated_count"`
	AverageRating float64  `json:"average_rating"` // over RatedCount

	PriceBands []Bucket `json:"price_bands"`
	Unbanded   int      `json:"unbanded"`

	Categories []Bucket `json:"categories"`

	PricedCount  int     `json:"priced_count"`
	TotalValue   float64 `json:"total_value"`
	TotalSavings float64 `json:"total_savings"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

// Compute reduces records into summary aggregates in a single pass.
// Every average and percentage is 0, never NaN, when its population is empty.
func Compute(records []record.Record, spec Spec) Result {
	res := Result{Total: len(records)}

	var ratingCounts [RatingLevels]int
	var ratingSum float64

	bands := ascending(spec.PriceBands)
	bandCounts := make([]int, len(bands))
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)

	catCounts := make(map[string]int)
	var catOrder []string

	for _, r := range records {
		if v, ok := spec.Rating.Get(r); ok {
			if b, ok := ratingBucket(v); ok {
				ratingCounts[b-1]++
			}
			ratingSum += v
			res.RatedCount++
		}

		if p, ok := spec.Price.Get(r); ok {
			res.PricedCount++
			res.TotalValue += p
			minPrice = math.Min(minPrice, p)
			maxPrice = math.Max(maxPrice, p)
			if i := bandIndex(bands, p); i >= 0 {
				bandCounts[i]++
			} else {
				res.Unbanded++
			}
			res.TotalSavings += savings(r, p, spec)
		}

		if c, ok := spec.Category.Get(r); ok && c != "" {
			if _, seen := catCounts[c]; !seen {
				catOrder = append(catOrder, c)
			}
			catCounts[c]++
		}
	}

	res.Ratings = make([]Bucket, RatingLevels)
	for i := range ratingCounts {
		res.Ratings[i] = Bucket{Label: strconv.Itoa(i + 1), Count: ratingCounts[i], total: res.Total}
	}
	res.AverageRating = mean(ratingSum, res.RatedCount)

	banded := res.PricedCount - res.Unbanded
	res.PriceBands = make([]Bucket, len(bands))
	for i, b := range bands {
		res.PriceBands[i] = Bucket{Label: b.Label, Count: bandCounts[i], total: banded}
	}

	res.Categories = make([]Bucket, len(catOrder))
	for i, c := range catOrder {
		res.Categories[i] = Bucket{Label: c, Count: catCounts[c], total: res.Total}
	}
	sort.SliceStable(res.Categories, func(i, j int) bool {
		return res.Categories[i].Count > res.Categories[j].Count
	})

	res.AveragePrice = mean(res.TotalValue, res.Total)
	if res.PricedCount > 0 {
		res.MinPrice, res.MaxPrice = minPrice, maxPrice
	}
	return res
}

// ratingBucket rounds half up. Ratings that round outside 1..RatingLevels belong to no bucket.
func ratingBucket(v float64) (int, bool) {
	b := math.Round(v)
	if b < 1 || b > RatingLevels {
		return 0, false
	}
	return int(b), true
}

// ascending returns a copy of bands ordered by lower bound.
func ascending(bands []Band) []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Min < out[j].Min })
	return out
}

// bandIndex returns the first band in ascending order containing p, or -1.
func bandIndex(bands []Band, p float64) int {
	for i, b := range bands {
		if b.Min <= p && p <= b.Max {
			return i
		}
	}
	return -1
}

func savings(r record.Record, price float64, spec Spec) float64 {
	d, ok := spec.Discount.Get(r)
	if !ok || d == 0 {
		return 0
	}
	orig, ok := spec.OriginalPrice.Get(r)
	if !ok {
		return 0
	}
	return orig - price
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
