package cart

import (
	"math"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of decimal places money is rounded to for display.
const CurrencyPlaces = 2

// Item is the identity and price of something that can be put in a cart.
type Item struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}

// LineEntry is one distinct item in an Accumulator. Quantity is always >= 1.
type LineEntry struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns the unrounded unit price times quantity.
func (e LineEntry) LineTotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Snapshot is an immutable view of an Accumulator.
type Snapshot struct {
	Entries  []LineEntry     `json:"entries"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Quantity int             `json:"quantity"`
}

// Observer is called synchronously after every mutation that changed the accumulator.
type Observer func(Snapshot)

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithObserver registers a change observer.
func WithObserver(o Observer) Option {
	return func(a *Accumulator) { a.observers = append(a.observers, o) }
}

// Accumulator maps item ids to line entries. At most one entry exists per id.
// It is not safe for concurrent use.
type Accumulator struct {
	entries   map[string]*LineEntry
	order     []string
	observers []Observer
}

// New creates an empty Accumulator.
func New(opts ...Option) *Accumulator {
	a := &Accumulator{entries: make(map[string]*LineEntry)}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Add merges delta into the item's entry, inserting it if absent.
// A non-positive delta decrements an existing entry and removes it below 1;
// it never inserts. The first recorded unit price is kept on merge.
// A merged quantity saturates at math.MaxInt.
func (a *Accumulator) Add(item Item, delta int) *Accumulator {
	if e, ok := a.entries[item.ID]; ok {
		if delta > math.MaxInt-e.Quantity {
			delta = math.MaxInt - e.Quantity
		}
		if e.Quantity+delta < 1 {
			return a.Remove(item.ID)
		}
		e.Quantity += delta
		a.notify()
		return a
	}
	if delta < 1 {
		return a
	}
	a.entries[item.ID] = &LineEntry{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  delta,
	}
	a.order = append(a.order, item.ID)
	a.notify()
	return a
}

// Remove deletes the entry for id. Removing an absent id is a no-op.
func (a *Accumulator) Remove(id string) *Accumulator {
	if _, ok := a.entries[id]; !ok {
		return a
	}
	delete(a.entries, id)
	for i, v := range a.order {
		if v == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	a.notify()
	return a
}

// SetQuantity replaces the entry's quantity. Below 1 it behaves exactly as Remove.
// Setting the quantity of an absent id is a no-op.
func (a *Accumulator) SetQuantity(id string, quantity int) *Accumulator {
	if quantity < 1 {
		return a.Remove(id)
	}
	e, ok := a.entries[id]
	if !ok || e.Quantity == quantity {
		return a
	}
	e.Quantity = quantity
	a.notify()
	return a
}

// Toggle removes the item if present, otherwise adds it with quantity 1.
// It reports whether the item is present afterwards.
func (a *Accumulator) Toggle(item Item) bool {
	if a.Contains(item.ID) {
		a.Remove(item.ID)
		return false
	}
	a.Add(item, 1)
	return true
}

// Contains reports whether id has an entry.
func (a *Accumulator) Contains(id string) bool {
	_, ok := a.entries[id]
	return ok
}

// Entry returns a copy of the entry for id.
func (a *Accumulator) Entry(id string) (LineEntry, bool) {
	e, ok := a.entries[id]
	if !ok {
		return LineEntry{}, false
	}
	return *e, true
}

// Entries returns copies of all entries in insertion order.
func (a *Accumulator) Entries() []LineEntry {
	out := make([]LineEntry, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.entries[id])
	}
	return out
}

// Subtotal returns the exact, unrounded sum of line totals.
func (a *Accumulator) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range a.entries {
		sum = sum.Add(e.LineTotal())
	}
	return sum
}

// Total returns the subtotal rounded to CurrencyPlaces.
func (a *Accumulator) Total() decimal.Decimal {
	return a.Subtotal().Round(CurrencyPlaces)
}

// Count returns the number of distinct entries.
func (a *Accumulator) Count() int { return len(a.entries) }

// Quantity returns the sum of all entry quantities.
func (a *Accumulator) Quantity() int {
	n := 0
	for _, e := range a.entries {
		n += e.Quantity
	}
	return n
}

// Snapshot captures the current entries and derived totals.
func (a *Accumulator) Snapshot() Snapshot {
	sub := a.Subtotal()
	return Snapshot{
		Entries:  a.Entries(),
		Subtotal: sub,
		Total:    sub.Round(CurrencyPlaces),
		Count:    a.Count(),
		Quantity: a.Quantity(),
	}
}

// Clone returns an independent copy without observers.
func (a *Accumulator) Clone() *Accumulator {
	c := New()
	for _, id := range a.order {
		e := *a.entries[id]
		c.entries[id] = &e
		c.order = append(c.order, id)
	}
	return c
}

func (a *Accumulator) notify() {
	if len(a.observers) == 0 {
		return
	}
	s := a.Snapshot()
	for _, o := range a.observers {
		o(s)
	}
}
