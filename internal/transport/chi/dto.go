package chi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/dinekit/internal/domain"
	"github.com/kailas-cloud/dinekit/internal/domain/aggregate"
	domcart "github.com/kailas-cloud/dinekit/internal/domain/cart"
	"github.com/kailas-cloud/dinekit/internal/domain/filter"
	"github.com/kailas-cloud/dinekit/internal/domain/record"
	"github.com/kailas-cloud/dinekit/internal/domain/slot"
	"github.com/kailas-cloud/dinekit/internal/domain/sorting"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeNotFound           ErrorCode = "not_found"
	CodeCartNotFound       ErrorCode = "cart_not_found"
	CodeItemNotFound       ErrorCode = "item_not_found"
	CodeInvalidCriterion   ErrorCode = "invalid_criterion"
	CodeInvalidSlotRequest ErrorCode = "invalid_slot_request"
	CodeQuantityLimit      ErrorCode = "quantity_limit_exceeded"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// CriterionRequest is one active filter on the wire. Field carries a single
// attribute name; text criteria may list several in Fields.
type CriterionRequest struct {
	Name     string   `json:"name,omitempty"`
	Kind     string   `json:"kind"`
	Field    string   `json:"field,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Query    string   `json:"query,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Allowed  []string `json:"allowed,omitempty"`
	Expected *bool    `json:"expected,omitempty"`
}

// BrowseRequest is the body of POST /collections/{collection}/browse.
type BrowseRequest struct {
	Criteria []CriterionRequest `json:"criteria,omitempty"`
	Sort     []sorting.Spec     `json:"sort,omitempty"`
}

// BrowseResponse lists the derived records.
type BrowseResponse struct {
	Items []record.Record `json:"items"`
	Count int             `json:"count"`
}

// CreateCartResponse carries a new cart id.
type CreateCartResponse struct {
	ID string `json:"id"`
}

// CartResponse is a cart snapshot with money rendered to two places.
type CartResponse struct {
	ID       string          `json:"id"`
	Entries  []CartEntryJSON `json:"entries"`
	Total    string          `json:"total"`
	Count    int             `json:"count"`
	Quantity int             `json:"quantity"`
}

// CartEntryJSON is one cart line.
type CartEntryJSON struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name,omitempty"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// AddItemRequest is the body of POST /carts/{id}/items.
type AddItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity *int   `json:"quantity,omitempty"`
}

// SetQuantityRequest is the body of PUT /carts/{id}/items/{item}.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// ToggleRequest is the body of POST /carts/{id}/wishlist-toggle.
type ToggleRequest struct {
	ItemID string `json:"item_id"`
}

// ToggleResponse reports whether the item is present after the toggle.
type ToggleResponse struct {
	Present bool         `json:"present"`
	Cart    CartResponse `json:"cart"`
}

// QuoteResponse is a checkout summary.
type QuoteResponse struct {
	ID       string `json:"id"`
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Delivery string `json:"delivery"`
	Total    string `json:"total"`
	Count    int    `json:"count"`
	Quantity int    `json:"quantity"`
}

// SlotsResponse lists reservation slots of a restaurant.
type SlotsResponse struct {
	RestaurantID string          `json:"restaurant_id"`
	Slots        []slot.TimeSlot `json:"slots"`
}

// criterionFromRequest builds a domain criterion. Unknown kinds report ok=false.
func criterionFromRequest(c CriterionRequest) (crit filter.Criterion, ok bool, err error) {
	switch filter.Kind(c.Kind) {
	case filter.KindText:
		names := c.Fields
		if len(names) == 0 && c.Field != "" {
			names = []string{c.Field}
		}
		fields := make([]record.Field[string], len(names))
		for i, n := range names {
			fields[i] = record.TextField(n)
		}
		crit, err = filter.NewText(c.Query, fields...)
	case filter.KindRange:
		crit, err = filter.NewRange(record.NumberField(c.Field), c.Min, c.Max)
	case filter.KindSet:
		crit, err = filter.NewSet(record.StringsField(c.Field), c.Allowed...)
	case filter.KindBoolean:
		expected := true
		if c.Expected != nil {
			expected = *c.Expected
		}
		crit, err = filter.NewBoolean(record.BoolField(c.Field), expected)
	default:
		return filter.Criterion{}, false, nil
	}
	if err != nil {
		return filter.Criterion{}, true, fmt.Errorf("criterion %q: %w", c.Name, err)
	}
	return crit, true, nil
}

// cutBand splits "lo-hi" on the first '-' after the lower bound's sign, so "-5-0" is [-5, 0].
func cutBand(s string) (lo, hi string, ok bool) {
	if len(s) < 3 {
		return "", "", false
	}
	i := strings.IndexByte(s[1:], '-')
	if i < 0 {
		return "", "", false
	}
	return s[:i+1], s[i+2:], true
}

// parseBands parses "0-10", "10-20" or "-5-0" into price bands.
func parseBands(raw []string) ([]aggregate.Band, error) {
	var bands []aggregate.Band
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		lo, hi, ok := cutBand(s)
		if !ok {
			return nil, fmt.Errorf("%w: price band %q must be min-max", domain.ErrInvalidRequest, s)
		}
		lower, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: price band %q: %w", domain.ErrInvalidRequest, s, err)
		}
		upper, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: price band %q: %w", domain.ErrInvalidRequest, s, err)
		}
		if lower > upper {
			return nil, fmt.Errorf("%w: price band %q is inverted", domain.ErrInvalidRequest, s)
		}
		bands = append(bands, aggregate.NewBand(lower, upper))
	}
	return bands, nil
}

func cartToResponse(id string, s domcart.Snapshot) CartResponse {
	entries := make([]CartEntryJSON, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = CartEntryJSON{
			ItemID:    e.ItemID,
			Name:      e.Name,
			UnitPrice: e.UnitPrice.StringFixed(domcart.CurrencyPlaces),
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal().StringFixed(domcart.CurrencyPlaces),
		}
	}
	return CartResponse{
		ID:       id,
		Entries:  entries,
		Total:    s.Total.StringFixed(domcart.CurrencyPlaces),
		Count:    s.Count,
		Quantity: s.Quantity,
	}
}

func quoteToResponse(id string, q domcart.Quote) QuoteResponse {
	return QuoteResponse{
		ID:       id,
		Subtotal: q.Subtotal.StringFixed(domcart.CurrencyPlaces),
		Tax:      q.Tax.StringFixed(domcart.CurrencyPlaces),
		Delivery: q.Delivery.StringFixed(domcart.CurrencyPlaces),
		Total:    q.Total.StringFixed(domcart.CurrencyPlaces),
		Count:    q.Count,
		Quantity: q.Quantity,
	}
}
