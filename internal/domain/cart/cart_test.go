package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func item(id, price string) Item {
	return Item{ID: id, Name: "item-" + id, UnitPrice: decimal.RequireFromString(price)}
}

func TestAdd_MergesByIdentity(t *testing.T) {
	a := New()
	a.Add(item("A", "4.50"), 1)
	a.Add(item("A", "4.50"), 1)

	if a.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", a.Count())
	}
	e, ok := a.Entry("A")
	if !ok || e.Quantity != 2 {
		t.Errorf("entry = %+v, %v", e, ok)
	}

	a.SetQuantity("A", 0)
	if a.Count() != 0 {
		t.Errorf("Count() after SetQuantity(0) = %d", a.Count())
	}
}

func TestTotal_ExampleScenario(t *testing.T) {
	a := New()
	a.Add(item("x", "9.99"), 1).Add(item("x", "9.99"), 2)

	if got := a.Total(); !got.Equal(decimal.RequireFromString("29.97")) {
		t.Errorf("Total() = %s, want 29.97", got)
	}
	if a.Count() != 1 {
		t.Errorf("Count() = %d", a.Count())
	}
	if a.Quantity() != 3 {
		t.Errorf("Quantity() = %d", a.Quantity())
	}
}

func TestTotal_RoundsOnlyAtBoundary(t *testing.T) {
	a := New()
	a.Add(item("a", "0.333"), 3)
	a.Add(item("b", "0.005"), 1)

	if got := a.Subtotal(); !got.Equal(decimal.RequireFromString("1.004")) {
		t.Errorf("Subtotal() = %s", got)
	}
	if got := a.Total().StringFixed(CurrencyPlaces); got != "1.00" {
		t.Errorf("Total() = %s", got)
	}

	// Repeated add/remove cycles do not drift.
	for i := 0; i < 1000; i++ {
		a.Add(item("c", "0.10"), 1)
		a.Remove("c")
	}
	if got := a.Subtotal(); !got.Equal(decimal.RequireFromString("1.004")) {
		t.Errorf("Subtotal() after cycles = %s", got)
	}
}

func TestAdd_NonPositiveDelta(t *testing.T) {
	a := New()
	a.Add(item("A", "1"), 0)
	a.Add(item("A", "1"), -2)
	if a.Count() != 0 {
		t.Fatalf("non-positive delta inserted an entry")
	}

	a.Add(item("A", "1"), 3)
	a.Add(item("A", "1"), -1)
	if e, _ := a.Entry("A"); e.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", e.Quantity)
	}
	a.Add(item("A", "1"), -2)
	if a.Contains("A") {
		t.Error("decrement to zero should remove the entry")
	}
}

func TestAdd_LargeDeltaSaturates(t *testing.T) {
	a := New()
	a.Add(item("A", "1"), 2)
	a.Add(item("A", "1"), math.MaxInt)
	e, ok := a.Entry("A")
	if !ok {
		t.Fatal("overflowing delta removed the entry")
	}
	if e.Quantity != math.MaxInt {
		t.Errorf("quantity = %d, want %d", e.Quantity, math.MaxInt)
	}
}

func TestAdd_KeepsFirstUnitPrice(t *testing.T) {
	a := New()
	a.Add(item("A", "5.00"), 1)
	a.Add(item("A", "7.00"), 1)
	if e, _ := a.Entry("A"); !e.UnitPrice.Equal(decimal.RequireFromString("5")) {
		t.Errorf("unit price = %s", e.UnitPrice)
	}
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	calls := 0
	a := New(WithObserver(func(Snapshot) { calls++ }))
	a.Remove("ghost")
	a.SetQuantity("ghost", 4)
	if calls != 0 {
		t.Errorf("observer called %d times for no-op mutations", calls)
	}

	a.Add(item("A", "1"), 1)
	a.Remove("A")
	a.Remove("A")
	if a.Count() != 0 || calls != 2 {
		t.Errorf("Count() = %d, calls = %d", a.Count(), calls)
	}
}

func TestSetQuantity(t *testing.T) {
	a := New()
	a.Add(item("A", "2.00"), 1)
	a.SetQuantity("A", 5)
	if e, _ := a.Entry("A"); e.Quantity != 5 {
		t.Errorf("quantity = %d", e.Quantity)
	}
	a.SetQuantity("A", -3)
	if a.Contains("A") {
		t.Error("negative quantity should remove")
	}
}

func TestCount_VersusQuantity(t *testing.T) {
	a := New()
	a.Add(item("A", "1"), 2).Add(item("B", "1"), 3).Add(item("C", "1"), 1)
	if a.Count() != 3 || a.Quantity() != 6 {
		t.Errorf("Count() = %d, Quantity() = %d", a.Count(), a.Quantity())
	}
}

func TestEntries_InsertionOrder(t *testing.T) {
	a := New()
	a.Add(item("c", "1"), 1).Add(item("a", "1"), 1).Add(item("b", "1"), 1)
	a.Remove("a")
	a.Add(item("a", "1"), 1)

	var got string
	for _, e := range a.Entries() {
		got += e.ItemID
	}
	if got != "cba" {
		t.Errorf("order = %s", got)
	}
}

func TestObserver_SeesTotalsSynchronously(t *testing.T) {
	var last Snapshot
	a := New(WithObserver(func(s Snapshot) { last = s }))

	a.Add(item("x", "9.99"), 1)
	if !last.Total.Equal(a.Total()) {
		t.Errorf("observer total %s != %s", last.Total, a.Total())
	}
	a.SetQuantity("x", 3)
	if last.Total.StringFixed(2) != "29.97" || last.Quantity != 3 {
		t.Errorf("observer snapshot = %+v", last)
	}
}

func TestToggle(t *testing.T) {
	a := New()
	if !a.Toggle(item("w", "3")) {
		t.Error("first toggle should add")
	}
	if e, _ := a.Entry("w"); e.Quantity != 1 {
		t.Errorf("quantity = %d", e.Quantity)
	}
	if a.Toggle(item("w", "3")) {
		t.Error("second toggle should remove")
	}
	if a.Count() != 0 {
		t.Errorf("Count() = %d", a.Count())
	}
}

func TestClone_Independent(t *testing.T) {
	a := New()
	a.Add(item("A", "1"), 1)
	c := a.Clone()
	c.Add(item("A", "1"), 1)
	c.Add(item("B", "1"), 1)

	if e, _ := a.Entry("A"); e.Quantity != 1 || a.Count() != 1 {
		t.Errorf("original changed: %+v, count %d", e, a.Count())
	}
}

func TestEmpty(t *testing.T) {
	a := New()
	s := a.Snapshot()
	if s.Count != 0 || s.Quantity != 0 || !s.Total.IsZero() || len(s.Entries) != 0 {
		t.Errorf("snapshot = %+v", s)
	}
}

func TestNewQuote(t *testing.T) {
	a := New()
	a.Add(item("x", "9.99"), 3).Add(item("y", "4.25"), 1)

	q := NewQuote(a.Snapshot(), decimal.RequireFromString("5"), decimal.RequireFromString("2.50"))

	// subtotal 34.22, tax 1.711 -> 1.71, total 34.22 + 1.711 + 2.50 = 38.431 -> 38.43
	checks := map[string]struct {
		got  decimal.Decimal
		want string
	}{
		"subtotal": {q.Subtotal, "34.22"},
		"tax":      {q.Tax, "1.71"},
		"delivery": {q.Delivery, "2.50"},
		"total":    {q.Total, "38.43"},
	}
	for name, c := range checks {
		if c.got.StringFixed(2) != c.want {
			t.Errorf("%s = %s, want %s", name, c.got.StringFixed(2), c.want)
		}
	}
	if q.Count != 2 || q.Quantity != 4 {
		t.Errorf("Count = %d, Quantity = %d", q.Count, q.Quantity)
	}
}

func TestNewQuote_EmptyCartHasNoDelivery(t *testing.T) {
	q := NewQuote(New().Snapshot(), decimal.RequireFromString("8"), decimal.RequireFromString("3"))
	if !q.Total.IsZero() || !q.Delivery.IsZero() {
		t.Errorf("quote = %+v", q)
	}
}
