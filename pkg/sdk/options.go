package dinekit

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	catalogData []byte

	locale string

	cartCollection string
	maxQuantity    int
	taxPercent     decimal.Decimal
	deliveryFee    decimal.Decimal

	slotIncrement int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCatalogFile loads collections and restaurants from a YAML file.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
		c.catalogData = nil
	})
}

// WithCatalog parses collections and restaurants from YAML bytes.
func WithCatalog(data []byte) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogData = data
		c.catalogPath = ""
	})
}

// WithLocale sets the BCP 47 tag used to collate names. Default: "en".
func WithLocale(tag string) Option {
	return optionFunc(func(c *clientConfig) {
		c.locale = tag
	})
}

// WithCartCollection names the collection carts are priced from. Default: "menu".
func WithCartCollection(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cartCollection = name
	})
}

// WithMaxQuantity caps the quantity of a single cart line. 0 means unlimited (default).
func WithMaxQuantity(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxQuantity = n
	})
}

// WithPricing sets the checkout tax percentage and flat delivery fee.
// Defaults: zero tax, free delivery.
func WithPricing(taxPercent, deliveryFee decimal.Decimal) Option {
	return optionFunc(func(c *clientConfig) {
		c.taxPercent = taxPercent
		c.deliveryFee = deliveryFee
	})
}

// WithSlotIncrement sets the reservation slot step for restaurants that
// declare none. Default: 30 minutes.
func WithSlotIncrement(minutes int) Option {
	return optionFunc(func(c *clientConfig) {
		c.slotIncrement = minutes
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
