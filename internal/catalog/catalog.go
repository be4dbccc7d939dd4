package catalog

import "github.com/shopspring/decimal"

// Catalog is the hardcoded product list the storefront prices carts from.
// There is no catalog service behind it.
type Catalog struct {
	byID   map[string]Product
	bySlug map[string]Product
	order  []string
}

func New(products []Product) *Catalog {
	c := &Catalog{
		byID:   make(map[string]Product, len(products)),
		bySlug: make(map[string]Product, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = p
		if p.Slug != "" {
			c.bySlug[p.Slug] = p
		}
		c.order = append(c.order, p.ID)
	}
	return c
}

func (c *Catalog) Get(id string) (Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (c *Catalog) BySlug(slug string) (Product, error) {
	p, ok := c.bySlug[slug]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// List returns products in declaration order, optionally filtered by category.
func (c *Catalog) List(category Category) []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		p := c.byID[id]
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Default returns the sample collection shipped with the storefront.
func Default() *Catalog {
	egp := decimal.NewFromInt
	was := func(v int64) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.NewFromInt(v))
	}

	return New([]Product{
		{
			ID:       "f1",
			Name:     LocalizedName{En: "Silk Chiffon Scarf", Ar: "وشاح حرير شيفون"},
			Price:    egp(450),
			Category: CategoryFashion,
			Image:    "/images/products/scarf1.jpg",
			Slug:     "silk-chiffon-scarf",
		},
		{
			ID:            "f2",
			Name:          LocalizedName{En: "Linen Maxi Dress", Ar: "فستان كتان ماكسي"},
			Price:         egp(1200),
			OriginalPrice: was(1500),
			Category:      CategoryFashion,
			Image:         "/images/products/dress1.jpg",
			Slug:          "linen-maxi-dress",
		},
		{
			ID:       "f3",
			Name:     LocalizedName{En: "Pleated Midi Skirt", Ar: "تنورة ميدي بكسرات"},
			Price:    egp(1250),
			Category: CategoryFashion,
			Image:    "/images/products/skirt1.jpg",
			Slug:     "pleated-midi-skirt",
		},
		{
			ID:       "b1",
			Name:     LocalizedName{En: "Rose Lip Tint", Ar: "صبغة شفاه بالورد"},
			Price:    egp(150),
			Category: CategoryBeauty,
			Image:    "/images/products/tint1.jpg",
			Slug:     "rose-lip-tint",
		},
		{
			ID:            "b2",
			Name:          LocalizedName{En: "Argan Glow Serum", Ar: "سيروم الأرغان"},
			Price:         egp(300),
			OriginalPrice: was(380),
			Category:      CategoryBeauty,
			Image:         "/images/products/serum1.jpg",
			Slug:          "argan-glow-serum",
		},
		{
			ID:       "h1",
			Name:     LocalizedName{En: "Hand-thrown Ceramic Vase", Ar: "مزهرية سيراميك يدوية"},
			Price:    egp(600),
			Category: CategoryHome,
			Image:    "/images/products/vase1.jpg",
			Slug:     "ceramic-vase",
		},
		{
			ID:          "h2",
			Name:        LocalizedName{En: "Oud Scented Candle", Ar: "شمعة معطرة بالعود"},
			Price:       egp(220),
			Category:    CategoryHome,
			Image:       "/images/products/candle1.jpg",
			Slug:        "oud-scented-candle",
			MaxQuantity: 10,
		},
	})
}
