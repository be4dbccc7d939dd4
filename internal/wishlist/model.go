package wishlist

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/memoelle/storefront-go/internal/catalog"
)

// Item is a saved product. Items are unique by ID within a State.
type Item struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	LocalizedName string              `json:"nameAr,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Image         string              `json:"image,omitempty"`
	Category      catalog.Category    `json:"category"`
	Slug          string              `json:"slug,omitempty"`
	AddedAt       time.Time           `json:"addedAt"`
}

func NewItem(p catalog.Product) Item {
	return Item{
		ID:            p.ID,
		Name:          p.Name.En,
		LocalizedName: p.Name.Ar,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      p.Category,
		Slug:          p.Slug,
	}
}

type State struct {
	Items []Item `json:"items"`
}

func Empty() State {
	return State{Items: []Item{}}
}

func (s State) Count() int { return len(s.Items) }

func (s State) Contains(id string) bool {
	return s.index(id) >= 0
}

func (s State) index(id string) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
