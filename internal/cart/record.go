package cart

import (
	"time"

	"github.com/memoelle/storefront-go/internal/promo"
)

const (
	StorageKey    = "memoelle-cart"
	SchemaVersion = 1
)

// Record is the persisted subset of State. IsOpen is never written.
type Record struct {
	Version        int         `json:"version"`
	Items          []LineItem  `json:"items"`
	PromoCode      *promo.Code `json:"promoCode,omitempty"`
	LastModifiedAt *time.Time  `json:"lastModifiedAt,omitempty"`
}

func (s State) Record() Record {
	c := s.clone()
	rec := Record{
		Version:   SchemaVersion,
		Items:     c.Items,
		PromoCode: c.Promo,
	}
	if !s.LastModifiedAt.IsZero() {
		ts := s.LastModifiedAt.UTC()
		rec.LastModifiedAt = &ts
	}
	return rec
}

// State restores a cart from a record. Lines with no id or a non-positive
// quantity are dropped and an invalid promo is discarded. The drawer starts
// closed.
func (r Record) State() State {
	s := Empty()
	for _, li := range r.Items {
		if li.ID == "" || li.Quantity <= 0 {
			continue
		}
		s.Items = append(s.Items, li)
	}
	if r.PromoCode != nil && r.PromoCode.Validate() == nil {
		p := *r.PromoCode
		s.Promo = &p
	}
	if r.LastModifiedAt != nil {
		s.LastModifiedAt = r.LastModifiedAt.UTC()
	}
	return s
}
