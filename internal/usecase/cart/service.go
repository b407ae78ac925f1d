package cart

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinekit/internal/domain"
	domcart "github.com/kailas-cloud/dinekit/internal/domain/cart"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
	"github.com/kailas-cloud/dinekit/internal/logger"
	"github.com/kailas-cloud/dinekit/internal/metrics"
)

// DefaultCollection is the catalog collection items are priced from.
const DefaultCollection = "menu"

var (
	nameField  = record.TextField("name")
	priceField = record.DecimalField("price")
)

// Service manages carts and wishlists backed by keyed accumulators.
type Service struct {
	items       ItemReader
	store       Store
	collection  string
	maxQuantity int
	taxPercent  decimal.Decimal
	deliveryFee decimal.Decimal
}

// New creates a cart service with no quantity cap, no tax and no delivery fee.
func New(items ItemReader, store Store) *Service {
	return &Service{items: items, store: store, collection: DefaultCollection}
}

// WithCollection sets the catalog collection items are priced from.
func (s *Service) WithCollection(name string) *Service {
	if name != "" {
		s.collection = name
	}
	return s
}

// WithMaxQuantity caps the quantity of a single line. 0 disables the cap.
func (s *Service) WithMaxQuantity(n int) *Service {
	if n >= 0 {
		s.maxQuantity = n
	}
	return s
}

// WithPricing sets the tax percentage and flat delivery fee used by Quote.
func (s *Service) WithPricing(taxPercent, deliveryFee decimal.Decimal) *Service {
	s.taxPercent = taxPercent
	s.deliveryFee = deliveryFee
	return s
}

// Create allocates an empty cart.
func (s *Service) Create(ctx context.Context) (string, error) {
	id, err := s.store.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create cart: %w", err)
	}
	logger.FromContext(ctx).Debug("Cart created", zap.String("cart_id", id))
	return id, nil
}

// Get returns the current cart snapshot.
func (s *Service) Get(ctx context.Context, cartID string) (domcart.Snapshot, error) {
	return s.store.Get(ctx, cartID)
}

// Delete drops a cart.
func (s *Service) Delete(ctx context.Context, cartID string) error {
	return s.store.Delete(ctx, cartID)
}

// Add merges delta units of a catalog item into the cart.
// A non-positive delta decrements and never inserts.
func (s *Service) Add(ctx context.Context, cartID, itemID string, delta int) (domcart.Snapshot, error) {
	item, err := s.item(ctx, itemID)
	if err != nil {
		return domcart.Snapshot{}, err
	}
	snap, err := s.store.Update(ctx, cartID, func(acc *domcart.Accumulator) error {
		current := 0
		if e, ok := acc.Entry(itemID); ok {
			current = e.Quantity
		}
		if err := s.checkAdd(current, delta); err != nil {
			return err
		}
		acc.Add(item, delta)
		return nil
	})
	if err != nil {
		return domcart.Snapshot{}, err
	}
	s.record(ctx, "add", cartID, itemID, snap)
	return snap, nil
}

// Remove deletes an item from the cart. Removing an absent item is a no-op.
func (s *Service) Remove(ctx context.Context, cartID, itemID string) (domcart.Snapshot, error) {
	snap, err := s.store.Update(ctx, cartID, func(acc *domcart.Accumulator) error {
		acc.Remove(itemID)
		return nil
	})
	if err != nil {
		return domcart.Snapshot{}, err
	}
	s.record(ctx, "remove", cartID, itemID, snap)
	return snap, nil
}

// SetQuantity replaces an item's quantity; below 1 removes it.
func (s *Service) SetQuantity(ctx context.Context, cartID, itemID string, quantity int) (domcart.Snapshot, error) {
	snap, err := s.store.Update(ctx, cartID, func(acc *domcart.Accumulator) error {
		if err := s.checkLimit(quantity); err != nil {
			return err
		}
		acc.SetQuantity(itemID, quantity)
		return nil
	})
	if err != nil {
		return domcart.Snapshot{}, err
	}
	s.record(ctx, "set_quantity", cartID, itemID, snap)
	return snap, nil
}

// Toggle adds a catalog item with quantity 1 or removes it, wishlist style.
// It reports whether the item is present afterwards.
func (s *Service) Toggle(ctx context.Context, cartID, itemID string) (bool, domcart.Snapshot, error) {
	item, err := s.item(ctx, itemID)
	if err != nil {
		return false, domcart.Snapshot{}, err
	}
	var present bool
	snap, err := s.store.Update(ctx, cartID, func(acc *domcart.Accumulator) error {
		present = acc.Toggle(item)
		return nil
	})
	if err != nil {
		return false, domcart.Snapshot{}, err
	}
	s.record(ctx, "toggle", cartID, itemID, snap)
	return present, snap, nil
}

// Quote prices the cart for checkout.
func (s *Service) Quote(ctx context.Context, cartID string) (domcart.Quote, error) {
	snap, err := s.store.Get(ctx, cartID)
	if err != nil {
		return domcart.Quote{}, err
	}
	return domcart.NewQuote(snap, s.taxPercent, s.deliveryFee), nil
}

func (s *Service) item(ctx context.Context, itemID string) (domcart.Item, error) {
	rec, err := s.items.Record(ctx, s.collection, itemID)
	if err != nil {
		return domcart.Item{}, fmt.Errorf("lookup item: %w", err)
	}
	price, ok := priceField.Get(rec)
	if !ok {
		return domcart.Item{}, fmt.Errorf("%w: item %q has no price", domain.ErrInvalidRequest, itemID)
	}
	if price.IsNegative() {
		return domcart.Item{}, fmt.Errorf("%w: item %q has a negative price", domain.ErrInvalidRequest, itemID)
	}
	name, _ := nameField.Get(rec)
	return domcart.Item{ID: rec.ID(), Name: name, UnitPrice: price}, nil
}

// checkAdd rejects a delta that would push the line past the cap, or past math.MaxInt when uncapped.
func (s *Service) checkAdd(current, delta int) error {
	limit := s.maxQuantity
	if limit <= 0 {
		limit = math.MaxInt
	}
	if delta > 0 && delta > limit-current {
		return domain.NewQuantityLimit(limit)
	}
	return nil
}

func (s *Service) checkLimit(quantity int) error {
	if s.maxQuantity > 0 && quantity > s.maxQuantity {
		return domain.NewQuantityLimit(s.maxQuantity)
	}
	return nil
}

func (s *Service) record(ctx context.Context, op, cartID, itemID string, snap domcart.Snapshot) {
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	logger.FromContext(ctx).Debug("Cart updated",
		zap.String("op", op),
		zap.String("cart_id", cartID),
		zap.String("item_id", itemID),
		zap.Int("count", snap.Count),
		zap.Int("quantity", snap.Quantity),
		zap.String("total", snap.Total.StringFixed(domcart.CurrencyPlaces)),
	)
}
