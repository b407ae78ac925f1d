package aggregate

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/kailas-cloud/dinekit/internal/domain/record"
)

func reviews() []record.Record {
	return []record.Record{
		record.New("1", map[string]any{"rating": 5.0, "price": 8.0, "category": "Spice Route"}),
		record.New("2", map[string]any{"rating": 3.0, "price": 25.0, "category": "Curry House"}),
		record.New("3", map[string]any{"rating": 4.6, "price": 15.0, "category": "Spice Route"}),
		record.New("4", map[string]any{"rating": 1.2, "price": 10.0, "category": "Curry House",
			"discount": 20.0, "originalPrice": 12.5}),
		record.New("5", map[string]any{"rating": 2.5, "price": 40.0, "category": "Tandoor"}),
	}
}

func TestNewBand_Label(t *testing.T) {
	if got := NewBand(0, 10).Label; got != "0-10" {
		t.Errorf("label = %q", got)
	}
	if got := NewBand(7.5, 12).Label; got != "7.5-12" {
		t.Errorf("label = %q", got)
	}
}

func TestCompute_RatingHistogram(t *testing.T) {
	res := Compute(reviews(), DefaultSpec())

	// 5 -> 5, 3 -> 3, 4.6 -> 5, 1.2 -> 1, 2.5 -> 3
	want := []int{1, 0, 2, 0, 2}
	for i, b := range res.Ratings {
		if b.Label != string(rune('1'+i)) {
			t.Errorf("bucket %d label = %q", i, b.Label)
		}
		if b.Count != want[i] {
			t.Errorf("bucket %s count = %d, want %d", b.Label, b.Count, want[i])
		}
	}
	if got := res.Ratings[4].Percentage(); got != 40 {
		t.Errorf("5-star percentage = %v", got)
	}
	if got := res.Ratings[0].DisplayPercentage(); got != 20 {
		t.Errorf("1-star display percentage = %d", got)
	}

	wantAvg := (5 + 3 + 4.6 + 1.2 + 2.5) / 5
	if math.Abs(res.AverageRating-wantAvg) > 1e-9 {
		t.Errorf("AverageRating = %v, want %v", res.AverageRating, wantAvg)
	}
}

func TestCompute_PartialRecordsUseTotal(t *testing.T) {
	rs := []record.Record{
		record.New("a", map[string]any{"rating": 5.0, "price": 10.0, "category": "Mains"}),
		record.New("b", map[string]any{"rating": 0.2}),
		record.New("c", map[string]any{"rating": 7.0}),
		record.New("d", nil),
	}
	res := Compute(rs, DefaultSpec())

	if res.Total != 4 || res.RatedCount != 3 || res.PricedCount != 1 {
		t.Errorf("Total = %d, RatedCount = %d, PricedCount = %d", res.Total, res.RatedCount, res.PricedCount)
	}
	var bucketed int
	for _, b := range res.Ratings {
		bucketed += b.Count
	}
	if bucketed != 1 || res.Ratings[4].Count != 1 {
		t.Errorf("out-of-range ratings were bucketed: %+v", res.Ratings)
	}
	if got := res.Ratings[4].Percentage(); got != 25 {
		t.Errorf("5-star percentage = %v, want 25", got)
	}
	if got := res.Categories[0].Percentage(); got != 25 {
		t.Errorf("category percentage = %v, want 25", got)
	}
	if res.AveragePrice != 2.5 {
		t.Errorf("AveragePrice = %v, want 2.5", res.AveragePrice)
	}
}

func TestCompute_PriceBandsFirstMatchAscending(t *testing.T) {
	// Supplied out of order; 10 sits on the shared boundary and belongs to 0-10.
	spec := DefaultSpec(NewBand(10, 20), NewBand(0, 10), NewBand(20, 30))
	res := Compute(reviews(), spec)

	labels := make([]string, len(res.PriceBands))
	counts := make([]int, len(res.PriceBands))
	for i, b := range res.PriceBands {
		labels[i] = b.Label
		counts[i] = b.Count
	}
	if strings.Join(labels, ",") != "0-10,10-20,20-30" {
		t.Errorf("labels = %v", labels)
	}
	if counts[0] != 2 || counts[1] != 1 || counts[2] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if res.Unbanded != 1 {
		t.Errorf("Unbanded = %d, want 1 (price 40)", res.Unbanded)
	}
	if got := res.PriceBands[0].Percentage(); got != 50 {
		t.Errorf("0-10 percentage = %v", got)
	}
}

func TestCompute_HistogramTotals(t *testing.T) {
	spec := DefaultSpec(NewBand(0, 10), NewBand(10, 20), NewBand(20, 50))
	res := Compute(reviews(), spec)

	var ratingSum, bandSum int
	for _, b := range res.Ratings {
		ratingSum += b.Count
	}
	for _, b := range res.PriceBands {
		bandSum += b.Count
	}
	if ratingSum != res.Total {
		t.Errorf("rating histogram sums to %d, want %d", ratingSum, res.Total)
	}
	if bandSum != res.Total {
		t.Errorf("price histogram sums to %d, want %d", bandSum, res.Total)
	}
}

func TestCompute_CategoryShare(t *testing.T) {
	rs := append(reviews(), record.New("6", map[string]any{"category": "Tandoor"}))
	res := Compute(rs, DefaultSpec())

	got := make([]string, len(res.Categories))
	for i, b := range res.Categories {
		got[i] = b.Label
	}
	// Spice Route and Curry House tie at 2 and keep first-seen order; Tandoor also has 2.
	if strings.Join(got, ",") != "Spice Route,Curry House,Tandoor" {
		t.Errorf("order = %v", got)
	}

	rs = append(reviews(), record.New("7", map[string]any{"category": "Tandoor"}), record.New("8", map[string]any{"category": "Tandoor"}))
	res = Compute(rs, DefaultSpec())
	if res.Categories[0].Label != "Tandoor" || res.Categories[0].Count != 3 {
		t.Errorf("top = %+v", res.Categories[0])
	}
	if got := res.Categories[0].Percentage(); math.Abs(got-300.0/7) > 1e-9 {
		t.Errorf("percentage = %v", got)
	}
}

func TestCompute_Monetary(t *testing.T) {
	res := Compute(reviews(), DefaultSpec())
	if res.TotalValue != 98 {
		t.Errorf("TotalValue = %v", res.TotalValue)
	}
	if res.TotalSavings != 2.5 {
		t.Errorf("TotalSavings = %v", res.TotalSavings)
	}
	if math.Abs(res.AveragePrice-19.6) > 1e-9 {
		t.Errorf("AveragePrice = %v", res.AveragePrice)
	}
	if res.MinPrice != 8 || res.MaxPrice != 40 {
		t.Errorf("range = %v..%v", res.MinPrice, res.MaxPrice)
	}
}

func TestCompute_SavingsNeedDiscount(t *testing.T) {
	rs := []record.Record{
		record.New("a", map[string]any{"price": 8.0, "originalPrice": 10.0}),
		record.New("b", map[string]any{"price": 8.0, "discount": 0.0, "originalPrice": 10.0}),
		record.New("c", map[string]any{"price": 8.0, "discount": 10.0}),
	}
	if got := Compute(rs, DefaultSpec()).TotalSavings; got != 0 {
		t.Errorf("TotalSavings = %v", got)
	}
}

func TestCompute_EmptyIsZeroNotNaN(t *testing.T) {
	res := Compute(nil, DefaultSpec(NewBand(0, 10)))

	if res.Total != 0 || res.AverageRating != 0 || res.AveragePrice != 0 {
		t.Errorf("unexpected non-zero: %+v", res)
	}
	if res.MinPrice != 0 || res.MaxPrice != 0 {
		t.Errorf("range = %v..%v", res.MinPrice, res.MaxPrice)
	}
	for _, b := range append(res.Ratings, res.PriceBands...) {
		p := b.Percentage()
		if p != 0 || math.IsNaN(p) {
			t.Errorf("bucket %s percentage = %v", b.Label, p)
		}
	}
	if len(res.Ratings) != RatingLevels {
		t.Errorf("len(Ratings) = %d", len(res.Ratings))
	}
	if _, err := json.Marshal(res); err != nil {
		t.Errorf("marshal: %v", err)
	}
}

func TestBucket_MarshalJSON(t *testing.T) {
	b := Bucket{Label: "5", Count: 1, total: 4}
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"label":"5","count":1,"percentage":25}` {
		t.Errorf("json = %s", data)
	}
}
