package promo

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind enumerates the supported discount strategies.
type Kind string

const (
	// KindPercentage discounts a share (0-100) of the subtotal.
	KindPercentage Kind = "percentage"
	// KindFixed discounts an absolute amount, capped at the subtotal.
	KindFixed Kind = "fixed"
)

var hundred = decimal.NewFromInt(100)

// Code is an applied promotion. At most one is active on a cart.
type Code struct {
	Code          string          `json:"code"`
	DiscountValue decimal.Decimal `json:"discount"`
	Kind          Kind            `json:"type"`
	MinOrder      decimal.Decimal `json:"minOrder"`
}

// ValidationError reports a malformed promo code definition.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("promo %s: %s", e.Field, e.Message)
}

// Normalize trims and upper-cases user input the way codes are stored.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// New builds a validated Code. A zero minOrder means no floor.
func New(code string, value decimal.Decimal, kind Kind, minOrder decimal.Decimal) (Code, error) {
	c := Code{
		Code:          Normalize(code),
		DiscountValue: value,
		Kind:          kind,
		MinOrder:      minOrder,
	}
	if err := c.Validate(); err != nil {
		return Code{}, err
	}
	return c, nil
}

func (c Code) Validate() error {
	if c.Code == "" {
		return &ValidationError{Field: "code", Message: "is required"}
	}
	if c.DiscountValue.IsNegative() {
		return &ValidationError{Field: "discount", Message: "must not be negative"}
	}
	switch c.Kind {
	case KindPercentage:
		if c.DiscountValue.GreaterThan(hundred) {
			return &ValidationError{Field: "discount", Message: "percentage must be 0-100"}
		}
	case KindFixed:
	default:
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown kind %q", c.Kind)}
	}
	if c.MinOrder.IsNegative() {
		return &ValidationError{Field: "minOrder", Message: "must not be negative"}
	}
	return nil
}

// Eligible reports whether subtotal meets the minimum order floor.
func (c Code) Eligible(subtotal decimal.Decimal) bool {
	if c.MinOrder.IsPositive() && subtotal.LessThan(c.MinOrder) {
		return false
	}
	return true
}

// Discount evaluates the promotion against a subtotal. An unmet floor yields
// zero while the code stays applied.
func (c Code) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !c.Eligible(subtotal) {
		return decimal.Zero
	}
	switch c.Kind {
	case KindPercentage:
		return subtotal.Mul(c.DiscountValue).Div(hundred)
	case KindFixed:
		return decimal.Min(c.DiscountValue, subtotal)
	}
	return decimal.Zero
}
