package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memoelle/storefront-go/internal/catalog"
	"github.com/memoelle/storefront-go/internal/promo"
)

// DefaultMaxQuantity bounds a line when the item does not carry its own limit.
const DefaultMaxQuantity = 99

type Variant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
	Shade string `json:"shade,omitempty"`
}

// Key identifies a cart line. Shade is deliberately absent.
type Key struct {
	ID    string
	Size  string
	Color string
}

type LineItem struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	LocalizedName string              `json:"nameAr,omitempty"`
	UnitPrice     decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Quantity      int                 `json:"quantity"`
	MaxQuantity   int                 `json:"maxQuantity,omitempty"`
	Variant       Variant             `json:"variant"`
	Category      catalog.Category    `json:"category"`
	Image         string              `json:"image,omitempty"`
	Slug          string              `json:"slug,omitempty"`
	SKU           string              `json:"sku,omitempty"`
}

func (li LineItem) Key() Key {
	return Key{ID: li.ID, Size: li.Variant.Size, Color: li.Variant.Color}
}

// Limit is the highest quantity the line may hold.
func (li LineItem) Limit() int {
	if li.MaxQuantity > 0 {
		return li.MaxQuantity
	}
	return DefaultMaxQuantity
}

// LineTotal is unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// State is the cart aggregate. IsOpen is UI state and never persisted.
type State struct {
	Items          []LineItem  `json:"items"`
	Promo          *promo.Code `json:"promoCode"`
	IsOpen         bool        `json:"isOpen"`
	LastModifiedAt time.Time   `json:"lastModifiedAt"`
}

// Empty returns the initial cart.
func Empty() State {
	return State{Items: []LineItem{}}
}

func (s State) clone() State {
	out := s
	out.Items = make([]LineItem, len(s.Items))
	copy(out.Items, s.Items)
	if s.Promo != nil {
		p := *s.Promo
		out.Promo = &p
	}
	return out
}
