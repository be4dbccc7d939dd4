package cart

import "github.com/memoelle/storefront-go/internal/promo"

// Action is a named cart command accepted by Reducer.Reduce.
type Action interface {
	Name() string
	durable() bool
}

// Durable reports whether the action can change persisted fields.
func Durable(a Action) bool { return a.durable() }

type AddItem struct {
	Item     LineItem
	Quantity int
}

// RemoveItem targets a line. Size and Color are ignored under LegacyIdentity.
type RemoveItem struct {
	ID    string
	Size  string
	Color string
}

type SetQuantity struct {
	ID       string
	Quantity int
	Size     string
	Color    string
}

type ApplyPromo struct {
	Promo promo.Code
}

type RemovePromo struct{}

type Clear struct{}

type OpenDrawer struct{}

type CloseDrawer struct{}

type ToggleDrawer struct{}

func (AddItem) Name() string      { return "cart/addItem" }
func (RemoveItem) Name() string   { return "cart/removeItem" }
func (SetQuantity) Name() string  { return "cart/setQuantity" }
func (ApplyPromo) Name() string   { return "cart/applyPromo" }
func (RemovePromo) Name() string  { return "cart/removePromo" }
func (Clear) Name() string        { return "cart/clear" }
func (OpenDrawer) Name() string   { return "cart/open" }
func (CloseDrawer) Name() string  { return "cart/close" }
func (ToggleDrawer) Name() string { return "cart/toggle" }

func (AddItem) durable() bool      { return true }
func (RemoveItem) durable() bool   { return true }
func (SetQuantity) durable() bool  { return true }
func (ApplyPromo) durable() bool   { return true }
func (RemovePromo) durable() bool  { return true }
func (Clear) durable() bool        { return true }
func (OpenDrawer) durable() bool   { return false }
func (CloseDrawer) durable() bool  { return false }
func (ToggleDrawer) durable() bool { return false }
