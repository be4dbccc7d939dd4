package cart

import (
	"time"

	"github.com/memoelle/storefront-go/internal/promo"
)

// IdentityPolicy selects how actions match existing lines.
type IdentityPolicy string

const (
	// StrictIdentity matches (id, size, color) in every action and clamps
	// fresh inserts to the line limit.
	StrictIdentity IdentityPolicy = "strict"
	// LegacyIdentity keeps the first storefront release's matching: removal by id only,
	// positive SetQuantity hits the first id match, zero SetQuantity honours
	// only the variant filters given, and fresh inserts are not clamped.
	LegacyIdentity IdentityPolicy = "legacy"
)

// Reducer applies cart actions. Every method is a pure function of its
// inputs and the injected clock; the input state is never modified.
type Reducer struct {
	Policy IdentityPolicy
	Now    func() time.Time
}

func NewReducer(policy IdentityPolicy, now func() time.Time) *Reducer {
	if policy == "" {
		policy = StrictIdentity
	}
	return &Reducer{Policy: policy, Now: now}
}

func (r *Reducer) legacy() bool { return r.Policy == LegacyIdentity }

func (r *Reducer) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now().UTC()
}

// Reduce dispatches a to the matching transition. Unknown actions return s.
func (r *Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		return r.AddItem(s, a.Item, a.Quantity)
	case RemoveItem:
		return r.RemoveItem(s, a)
	case SetQuantity:
		return r.SetQuantity(s, a)
	case ApplyPromo:
		return r.ApplyPromo(s, a.Promo)
	case RemovePromo:
		return r.RemovePromo(s)
	case Clear:
		return r.Clear(s)
	case OpenDrawer:
		return r.Open(s)
	case CloseDrawer:
		return r.Close(s)
	case ToggleDrawer:
		return r.Toggle(s)
	}
	return s
}

// AddItem increments the line matching item's identity or appends a new one.
// Quantities below one count as one. Increments past the line limit are
// discarded silently.
func (r *Reducer) AddItem(s State, item LineItem, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}
	next := s.clone()

	key := item.Key()
	for i := range next.Items {
		if next.Items[i].Key() != key {
			continue
		}
		next.Items[i].Quantity = min(next.Items[i].Quantity+quantity, next.Items[i].Limit())
		next.LastModifiedAt = r.now()
		return next
	}

	item.Quantity = quantity
	if !r.legacy() {
		item.Quantity = min(quantity, item.Limit())
	}
	next.Items = append(next.Items, item)
	next.LastModifiedAt = r.now()
	return next
}

func (r *Reducer) RemoveItem(s State, target RemoveItem) State {
	key := Key{ID: target.ID, Size: target.Size, Color: target.Color}
	return r.filter(s, func(li LineItem) bool {
		if r.legacy() {
			return li.ID == target.ID
		}
		return li.Key() == key
	})
}

// SetQuantity replaces a line's quantity, clamped to its limit. A quantity
// of zero or less removes the line.
func (r *Reducer) SetQuantity(s State, target SetQuantity) State {
	if target.Quantity <= 0 {
		return r.filter(s, func(li LineItem) bool {
			if li.ID != target.ID {
				return false
			}
			if r.legacy() {
				if target.Size != "" && li.Variant.Size != target.Size {
					return false
				}
				if target.Color != "" && li.Variant.Color != target.Color {
					return false
				}
				return true
			}
			return li.Variant.Size == target.Size && li.Variant.Color == target.Color
		})
	}

	key := Key{ID: target.ID, Size: target.Size, Color: target.Color}
	for i, li := range s.Items {
		match := li.Key() == key
		if r.legacy() {
			match = li.ID == target.ID
		}
		if !match {
			continue
		}
		next := s.clone()
		next.Items[i].Quantity = min(target.Quantity, li.Limit())
		next.LastModifiedAt = r.now()
		return next
	}
	return s
}

// ApplyPromo replaces any active promotion.
func (r *Reducer) ApplyPromo(s State, code promo.Code) State {
	next := s.clone()
	code.Code = promo.Normalize(code.Code)
	next.Promo = &code
	next.LastModifiedAt = r.now()
	return next
}

func (r *Reducer) RemovePromo(s State) State {
	if s.Promo == nil {
		return s
	}
	next := s.clone()
	next.Promo = nil
	next.LastModifiedAt = r.now()
	return next
}

// Clear empties the cart after checkout.
func (r *Reducer) Clear(s State) State {
	if len(s.Items) == 0 && s.Promo == nil {
		return s
	}
	next := s.clone()
	next.Items = []LineItem{}
	next.Promo = nil
	next.LastModifiedAt = r.now()
	return next
}

func (r *Reducer) Open(s State) State {
	s.IsOpen = true
	return s
}

func (r *Reducer) Close(s State) State {
	s.IsOpen = false
	return s
}

func (r *Reducer) Toggle(s State) State {
	s.IsOpen = !s.IsOpen
	return s
}

// filter drops every line drop matches. No match leaves s untouched.
func (r *Reducer) filter(s State, drop func(LineItem) bool) State {
	kept := make([]LineItem, 0, len(s.Items))
	for _, li := range s.Items {
		if !drop(li) {
			kept = append(kept, li)
		}
	}
	if len(kept) == len(s.Items) {
		return s
	}
	next := s.clone()
	next.Items = kept
	next.LastModifiedAt = r.now()
	return next
}
