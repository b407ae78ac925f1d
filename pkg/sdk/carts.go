package dinekit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// CartService manages in-memory carts priced from the catalog.
type CartService struct {
	svc cartUseCase
	obs *observer
}

// Create opens an empty cart and returns its id.
func (s *CartService) Create(ctx context.Context) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "cart.create", start, err) }()

	id, err := s.svc.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create cart: %w", err)
	}
	return id, nil
}

// Get returns a cart snapshot.
func (s *CartService) Get(ctx context.Context, cartID string) (_ Cart, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "cart.get", start, err, slog.String("cart", cartID)) }()

	snap, err := s.svc.Get(ctx, cartID)
	if err != nil {
		return Cart{}, fmt.Errorf("get cart %s: %w", cartID, err)
	}
	return cartFromDomain(cartID, snap), nil
}

// Delete discards a cart.
func (s *CartService) Delete(ctx context.Context, cartID string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "cart.delete", start, err, slog.String("cart", cartID)) }()

	if err = s.svc.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("delete cart %s: %w", cartID, err)
	}
	return nil
}

// Add merges quantity units of an item into the cart. A quantity below 1 changes nothing.
func (s *CartService) Add(ctx context.Context, cartID, itemID string, quantity int) (_ Cart, err error) {
	start := time.Now()
	defer func() {
		s.obs.observe(ctx, "cart.add", start, err, slog.String("cart", cartID), slog.String("item", itemID))
	}()

	snap, err := s.svc.Add(ctx, cartID, itemID, quantity)
	if err != nil {
		return Cart{}, fmt.Errorf("add %s to cart %s: %w", itemID, cartID, err)
	}
	return cartFromDomain(cartID, snap), nil
}

// Remove drops an item line. Removing an absent item is not an error.
func (s *CartService) Remove(ctx context.Context, cartID, itemID string) (_ Cart, err error) {
	start := time.Now()
	defer func() {
		s.obs.observe(ctx, "cart.remove", start, err, slog.String("cart", cartID), slog.String("item", itemID))
	}()

	snap, err := s.svc.Remove(ctx, cartID, itemID)
	if err != nil {
		return Cart{}, fmt.Errorf("remove %s from cart %s: %w", itemID, cartID, err)
	}
	return cartFromDomain(cartID, snap), nil
}

// SetQuantity replaces an existing line's quantity. A quantity below 1 removes the line.
func (s *CartService) SetQuantity(ctx context.Context, cartID, itemID string, quantity int) (_ Cart, err error) {
	start := time.Now()
	defer func() {
		s.obs.observe(ctx, "cart.set_quantity", start, err, slog.String("cart", cartID), slog.String("item", itemID))
	}()

	snap, err := s.svc.SetQuantity(ctx, cartID, itemID, quantity)
	if err != nil {
		return Cart{}, fmt.Errorf("set %s quantity in cart %s: %w", itemID, cartID, err)
	}
	return cartFromDomain(cartID, snap), nil
}

// Toggle adds one unit of an absent item or removes a present one.
// It reports whether the item is in the cart afterwards.
func (s *CartService) Toggle(ctx context.Context, cartID, itemID string) (_ bool, _ Cart, err error) {
	start := time.Now()
	defer func() {
		s.obs.observe(ctx, "cart.toggle", start, err, slog.String("cart", cartID), slog.String("item", itemID))
	}()

	present, snap, err := s.svc.Toggle(ctx, cartID, itemID)
	if err != nil {
		return false, Cart{}, fmt.Errorf("toggle %s in cart %s: %w", itemID, cartID, err)
	}
	return present, cartFromDomain(cartID, snap), nil
}

// Quote prices the cart with the configured tax and delivery fee.
func (s *CartService) Quote(ctx context.Context, cartID string) (_ Quote, err error) {
	start := time.Now()
	defer func() { s.obs.observe(ctx, "cart.quote", start, err, slog.String("cart", cartID)) }()

	q, err := s.svc.Quote(ctx, cartID)
	if err != nil {
		return Quote{}, fmt.Errorf("quote cart %s: %w", cartID, err)
	}
	return quoteFromDomain(cartID, q), nil
}
