package cart

import "github.com/shopspring/decimal"

// Shipping rule, in EGP.
const (
	FreeShippingThreshold = 500
	FlatShippingRate      = 60
)

// Pricing holds the shipping rule applied by Summarize.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingRate      decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(FreeShippingThreshold),
		FlatShippingRate:      decimal.NewFromInt(FlatShippingRate),
	}
}

func (p Pricing) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingRate
}

// Summary is the derived view of a cart. It is recomputed on every call.
type Summary struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"itemCount"`
}

func (s State) Summarize(p Pricing) Summary {
	subtotal := s.Subtotal()
	discount := s.discountFor(subtotal)
	shipping := p.Shipping(subtotal)
	return Summary{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Total:        decimal.Max(decimal.Zero, subtotal.Sub(discount).Add(shipping)),
		ItemCount:    s.ItemCount(),
	}
}

func (s State) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range s.Items {
		sum = sum.Add(li.LineTotal())
	}
	return sum
}

func (s State) Discount() decimal.Decimal {
	return s.discountFor(s.Subtotal())
}

func (s State) discountFor(subtotal decimal.Decimal) decimal.Decimal {
	if s.Promo == nil {
		return decimal.Zero
	}
	return s.Promo.Discount(subtotal)
}

func (s State) ShippingCost() decimal.Decimal {
	return DefaultPricing().Shipping(s.Subtotal())
}

func (s State) Total() decimal.Decimal {
	return s.Summarize(DefaultPricing()).Total
}

func (s State) ItemCount() int {
	n := 0
	for _, li := range s.Items {
		n += li.Quantity
	}
	return n
}

// Contains reports whether any line, of any variant, holds product id.
func (s State) Contains(id string) bool {
	for _, li := range s.Items {
		if li.ID == id {
			return true
		}
	}
	return false
}
