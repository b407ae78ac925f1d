package dinekit

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/kailas-cloud/dinekit/internal/domain/aggregate"
	domcart "github.com/kailas-cloud/dinekit/internal/domain/cart"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
	"github.com/kailas-cloud/dinekit/internal/domain/slot"
	"github.com/kailas-cloud/dinekit/internal/domain/sorting"
	"github.com/kailas-cloud/dinekit/internal/repository/cartstore"
	"github.com/kailas-cloud/dinekit/internal/repository/catalog"
	browseuc "github.com/kailas-cloud/dinekit/internal/usecase/browse"
	cartuc "github.com/kailas-cloud/dinekit/internal/usecase/cart"
	healthuc "github.com/kailas-cloud/dinekit/internal/usecase/health"
	reservationuc "github.com/kailas-cloud/dinekit/internal/usecase/reservation"
)

const defaultLocale = "en"

// Internal interfaces, swapped for mocks in tests.
type browseUseCase interface {
	Browse(ctx context.Context, collection string, q browseuc.Query) ([]record.Record, error)
	Summarize(ctx context.Context, collection string, spec aggregate.Spec) (aggregate.Result, error)
}

type cartUseCase interface {
	Create(ctx context.Context) (string, error)
	Get(ctx context.Context, cartID string) (domcart.Snapshot, error)
	Delete(ctx context.Context, cartID string) error
	Add(ctx context.Context, cartID, itemID string, delta int) (domcart.Snapshot, error)
	Remove(ctx context.Context, cartID, itemID string) (domcart.Snapshot, error)
	SetQuantity(ctx context.Context, cartID, itemID string, quantity int) (domcart.Snapshot, error)
	Toggle(ctx context.Context, cartID, itemID string) (bool, domcart.Snapshot, error)
	Quote(ctx context.Context, cartID string) (domcart.Quote, error)
}

type reservationUseCase interface {
	Slots(ctx context.Context, restaurantID string, incrementMin int) ([]slot.TimeSlot, error)
}

// Client is the dinekit SDK entry point. It is safe for concurrent use.
type Client struct {
	catalog        *catalog.Repo
	carts          *cartstore.Store
	browseSvc      browseUseCase
	cartSvc        cartUseCase
	reservationSvc reservationUseCase
	healthSvc      healthUseCase
	obs            *observer
}

// New loads the catalog and wires an in-process client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		locale:         defaultLocale,
		cartCollection: cartuc.DefaultCollection,
		slotIncrement:  reservationuc.DefaultIncrementMin,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	tag, err := validate(cfg)
	if err != nil {
		return nil, err
	}

	repo, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return wireClient(repo, cfg, tag, obs), nil
}

func validate(cfg *clientConfig) (language.Tag, error) {
	if cfg.catalogPath == "" && cfg.catalogData == nil {
		return language.Tag{}, errors.New("dinekit: catalog required (use WithCatalogFile or WithCatalog)")
	}
	tag, err := language.Parse(cfg.locale)
	if err != nil {
		return language.Tag{}, fmt.Errorf("dinekit: locale %q: %w", cfg.locale, err)
	}
	if cfg.maxQuantity < 0 {
		return language.Tag{}, fmt.Errorf("dinekit: max quantity must not be negative, got %d", cfg.maxQuantity)
	}
	if cfg.taxPercent.IsNegative() || cfg.deliveryFee.IsNegative() {
		return language.Tag{}, errors.New("dinekit: tax and delivery fee must not be negative")
	}
	if cfg.slotIncrement <= 0 {
		return language.Tag{}, fmt.Errorf("dinekit: slot increment must be positive, got %d", cfg.slotIncrement)
	}
	return tag, nil
}

func loadCatalog(cfg *clientConfig) (*catalog.Repo, error) {
	if cfg.catalogData != nil {
		repo, err := catalog.Parse(cfg.catalogData)
		if err != nil {
			return nil, fmt.Errorf("dinekit: %w", err)
		}
		return repo, nil
	}
	repo, err := catalog.Load(cfg.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("dinekit: %w", err)
	}
	return repo, nil
}

func wireClient(repo *catalog.Repo, cfg *clientConfig, tag language.Tag, obs *observer) *Client {
	carts := cartstore.New()

	return &Client{
		catalog:   repo,
		carts:     carts,
		browseSvc: browseuc.New(repo, sorting.NewLibrary(sorting.WithLocale(tag))),
		cartSvc: cartuc.New(repo, carts).
			WithCollection(cfg.cartCollection).
			WithMaxQuantity(cfg.maxQuantity).
			WithPricing(cfg.taxPercent, cfg.deliveryFee),
		reservationSvc: reservationuc.New(repo, slot.NewGenerator()).
			WithDefaultIncrement(cfg.slotIncrement),
		healthSvc: healthuc.New(map[string]healthuc.Pinger{
			"catalog": repo,
			"carts":   carts,
		}),
		obs: obs,
	}
}

// Collections returns the catalog collection names in sorted order.
func (c *Client) Collections() []string {
	return c.catalog.Collections()
}

// OpenCarts returns the number of live carts.
func (c *Client) OpenCarts() int {
	return c.carts.Len()
}

// Browse starts a filtered, sorted query over a collection.
func (c *Client) Browse(collection string) *BrowseBuilder {
	return &BrowseBuilder{client: c, collection: collection}
}

// Carts returns the cart service.
func (c *Client) Carts() *CartService {
	return &CartService{svc: c.cartSvc, obs: c.obs}
}

// Reservations returns the reservation slot service.
func (c *Client) Reservations() *ReservationService {
	return &ReservationService{svc: c.reservationSvc, obs: c.obs}
}
