package promo

import "github.com/shopspring/decimal"

// Catalog maps normalized codes to the promotions a shopper may apply.
type Catalog struct {
	codes map[string]Code
}

func NewCatalog(codes ...Code) *Catalog {
	c := &Catalog{codes: make(map[string]Code, len(codes))}
	for _, code := range codes {
		code.Code = Normalize(code.Code)
		c.codes[code.Code] = code
	}
	return c
}

// Lookup resolves raw user input, case-insensitively.
func (c *Catalog) Lookup(input string) (Code, bool) {
	code, ok := c.codes[Normalize(input)]
	return code, ok
}

// DefaultCatalog holds the codes advertised on the storefront banner.
func DefaultCatalog() *Catalog {
	return NewCatalog(Code{
		Code:          "THANKYOU10",
		DiscountValue: decimal.NewFromInt(10),
		Kind:          KindPercentage,
		MinOrder:      decimal.NewFromInt(200),
	})
}
