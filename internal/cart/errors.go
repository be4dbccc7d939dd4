package cart

import (
	"fmt"

	"github.com/memoelle/storefront-go/internal/catalog"
)

// ValidationError is returned when a line item is malformed. The reducer never
// returns it; callers validate before dispatching.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line item %s: %s", e.Field, e.Message)
}

func (li LineItem) Validate() error {
	if li.ID == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if li.UnitPrice.IsNegative() {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if li.OriginalPrice.Valid && li.OriginalPrice.Decimal.LessThan(li.UnitPrice) {
		return &ValidationError{Field: "originalPrice", Message: "must be at least the unit price"}
	}
	if li.MaxQuantity < 0 {
		return &ValidationError{Field: "maxQuantity", Message: "must not be negative"}
	}
	if !li.Category.Valid() {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", li.Category)}
	}
	return nil
}

// NewLineItem prices a catalog product for the cart. Quantity is left at
// zero; AddItem supplies it.
func NewLineItem(p catalog.Product, v Variant) (LineItem, error) {
	li := LineItem{
		ID:            p.ID,
		Name:          p.Name.En,
		LocalizedName: p.Name.Ar,
		UnitPrice:     p.Price,
		OriginalPrice: p.OriginalPrice,
		MaxQuantity:   p.MaxQuantity,
		Variant:       v,
		Category:      p.Category,
		Image:         p.Image,
		Slug:          p.Slug,
		SKU:           p.SKU,
	}
	if err := li.Validate(); err != nil {
		return LineItem{}, err
	}
	return li, nil
}
