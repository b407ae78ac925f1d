package cart

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Quote is a checkout summary for a cart snapshot. All amounts are rounded to CurrencyPlaces.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Delivery decimal.Decimal `json:"delivery"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Quantity int             `json:"quantity"`
}

// NewQuote prices a snapshot with a tax percentage and a flat delivery fee.
// Tax is computed on the unrounded subtotal; an empty cart has no delivery fee.
func NewQuote(s Snapshot, taxPercent, deliveryFee decimal.Decimal) Quote {
	tax := s.Subtotal.Mul(taxPercent).Div(hundred)
	delivery := decimal.Zero
	if s.Count > 0 {
		delivery = deliveryFee
	}
	return Quote{
		Subtotal: s.Subtotal.Round(CurrencyPlaces),
		Tax:      tax.Round(CurrencyPlaces),
		Delivery: delivery.Round(CurrencyPlaces),
		Total:    s.Subtotal.Add(tax).Add(delivery).Round(CurrencyPlaces),
		Count:    s.Count,
		Quantity: s.Quantity,
	}
}
