package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("product not found")

type Category string

const (
	CategoryFashion Category = "fashion"
	CategoryBeauty  Category = "beauty"
	CategoryHome    Category = "home"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFashion, CategoryBeauty, CategoryHome:
		return true
	}
	return false
}

// LocalizedName carries the English and Arabic display names of a product.
type LocalizedName struct {
	En string `json:"en"`
	Ar string `json:"ar,omitempty"`
}

type Product struct {
	ID            string              `json:"id"`
	Name          LocalizedName       `json:"name"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Category      Category            `json:"category"`
	Image         string              `json:"image"`
	Slug          string              `json:"slug"`
	SKU           string              `json:"sku,omitempty"`
	MaxQuantity   int                 `json:"maxQuantity,omitempty"`
}
