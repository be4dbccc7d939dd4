package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoelle/storefront-go/internal/catalog"
	"github.com/memoelle/storefront-go/internal/promo"
)

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// stepClock advances one second per call.
func stepClock() func() time.Time {
	t := epoch
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func item(id string, price int64, size, color string) LineItem {
	return LineItem{
		ID:        id,
		Name:      id,
		UnitPrice: decimal.NewFromInt(price),
		Variant:   Variant{Size: size, Color: color},
		Category:  catalog.CategoryFashion,
	}
}

func TestAddItem(t *testing.T) {
	r := NewReducer(StrictIdentity, stepClock())

	t.Run("merges same identity", func(t *testing.T) {
		s := r.AddItem(Empty(), item("p1", 1250, "", ""), 1)
		s = r.AddItem(s, item("p1", 1250, "", ""), 2)

		require.Len(t, s.Items, 1)
		assert.Equal(t, 3, s.Items[0].Quantity)
		assert.True(t, s.Subtotal().Equal(decimal.NewFromInt(3750)))
	})

	t.Run("variants are separate lines", func(t *testing.T) {
		s := r.AddItem(Empty(), item("f1", 450, "S", "Black"), 1)
		s = r.AddItem(s, item("f1", 450, "M", "Black"), 1)

		require.Len(t, s.Items, 2)
		assert.Equal(t, "S", s.Items[0].Variant.Size)
		assert.Equal(t, "M", s.Items[1].Variant.Size)
	})

	t.Run("shade does not split a line", func(t *testing.T) {
		a := item("b1", 150, "", "")
		a.Variant.Shade = "Rose"
		b := item("b1", 150, "", "")
		b.Variant.Shade = "Nude"

		s := r.AddItem(r.AddItem(Empty(), a, 1), b, 1)
		require.Len(t, s.Items, 1)
		assert.Equal(t, 2, s.Items[0].Quantity)
		assert.Equal(t, "Rose", s.Items[0].Variant.Shade)
	})

	t.Run("increment is clamped to max quantity", func(t *testing.T) {
		li := item("p2", 100, "", "")
		li.MaxQuantity = 5
		s := r.AddItem(Empty(), li, 4)
		s = r.AddItem(s, li, 4)

		assert.Equal(t, 5, s.Items[0].Quantity)
	})

	t.Run("default limit is 99", func(t *testing.T) {
		s := r.AddItem(Empty(), item("p3", 10, "", ""), 98)
		s = r.AddItem(s, item("p3", 10, "", ""), 10)

		assert.Equal(t, DefaultMaxQuantity, s.Items[0].Quantity)
	})

	t.Run("non-positive quantity counts as one", func(t *testing.T) {
		s := r.AddItem(Empty(), item("p4", 10, "", ""), 0)
		assert.Equal(t, 1, s.Items[0].Quantity)
	})

	t.Run("bumps lastModifiedAt and keeps input intact", func(t *testing.T) {
		in := Empty()
		out := r.AddItem(in, item("p5", 10, "", ""), 1)

		assert.Empty(t, in.Items)
		assert.True(t, in.LastModifiedAt.IsZero())
		assert.True(t, out.LastModifiedAt.After(epoch))
	})
}

func TestFreshInsertClamp(t *testing.T) {
	li := item("p1", 10, "", "")
	li.MaxQuantity = 3

	strict := NewReducer(StrictIdentity, stepClock()).AddItem(Empty(), li, 10)
	legacy := NewReducer(LegacyIdentity, stepClock()).AddItem(Empty(), li, 10)

	assert.Equal(t, 3, strict.Items[0].Quantity)
	assert.Equal(t, 10, legacy.Items[0].Quantity)
}

func twoVariants(r *Reducer) State {
	s := r.AddItem(Empty(), item("f1", 450, "S", "Black"), 1)
	return r.AddItem(s, item("f1", 450, "M", "Black"), 2)
}

func TestRemoveItem(t *testing.T) {
	t.Run("strict removes only the matching variant", func(t *testing.T) {
		r := NewReducer(StrictIdentity, stepClock())
		s := r.RemoveItem(twoVariants(r), RemoveItem{ID: "f1", Size: "S", Color: "Black"})

		require.Len(t, s.Items, 1)
		assert.Equal(t, "M", s.Items[0].Variant.Size)
	})

	t.Run("legacy removes every variant of the id", func(t *testing.T) {
		r := NewReducer(LegacyIdentity, stepClock())
		s := r.RemoveItem(twoVariants(r), RemoveItem{ID: "f1"})

		assert.Empty(t, s.Items)
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		r := NewReducer(StrictIdentity, stepClock())
		in := twoVariants(r)
		out := r.RemoveItem(in, RemoveItem{ID: "nope"})

		assert.Equal(t, in, out)
	})
}

func TestSetQuantity(t *testing.T) {
	tests := map[string]struct {
		policy IdentityPolicy
		action SetQuantity
		want   []int
	}{
		"strict updates the exact variant": {
			policy: StrictIdentity,
			action: SetQuantity{ID: "f1", Quantity: 7, Size: "M", Color: "Black"},
			want:   []int{1, 7},
		},
		"strict without variant matches nothing": {
			policy: StrictIdentity,
			action: SetQuantity{ID: "f1", Quantity: 7},
			want:   []int{1, 2},
		},
		"legacy updates the first id match": {
			policy: LegacyIdentity,
			action: SetQuantity{ID: "f1", Quantity: 7, Size: "M", Color: "Black"},
			want:   []int{7, 2},
		},
		"clamped to the line limit": {
			policy: StrictIdentity,
			action: SetQuantity{ID: "f1", Quantity: 500, Size: "S", Color: "Black"},
			want:   []int{99, 2},
		},
		"strict zero removes the exact variant": {
			policy: StrictIdentity,
			action: SetQuantity{ID: "f1", Quantity: 0, Size: "S", Color: "Black"},
			want:   []int{2},
		},
		"legacy zero with size filter": {
			policy: LegacyIdentity,
			action: SetQuantity{ID: "f1", Quantity: 0, Size: "M"},
			want:   []int{1},
		},
		"legacy zero without filters removes all": {
			policy: LegacyIdentity,
			action: SetQuantity{ID: "f1", Quantity: -1},
			want:   []int{},
		},
		"unknown id": {
			policy: LegacyIdentity,
			action: SetQuantity{ID: "zz", Quantity: 3},
			want:   []int{1, 2},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewReducer(tt.policy, stepClock())
			s := r.SetQuantity(twoVariants(r), tt.action)

			got := make([]int, 0, len(s.Items))
			for _, li := range s.Items {
				got = append(got, li.Quantity)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromoAndClear(t *testing.T) {
	r := NewReducer(StrictIdentity, stepClock())
	code := promo.Code{Code: " thankyou10 ", DiscountValue: decimal.NewFromInt(10), Kind: promo.KindPercentage, MinOrder: decimal.NewFromInt(200)}

	s := r.AddItem(Empty(), item("h1", 600, "", ""), 1)
	once := r.ApplyPromo(s, code)
	twice := r.ApplyPromo(once, code)

	require.NotNil(t, once.Promo)
	assert.Equal(t, "THANKYOU10", once.Promo.Code)
	assert.Equal(t, *once.Promo, *twice.Promo)
	assert.True(t, once.Discount().Equal(twice.Discount()))

	removed := r.RemovePromo(twice)
	assert.Nil(t, removed.Promo)
	assert.True(t, removed.Discount().IsZero())
	assert.Equal(t, removed, r.RemovePromo(removed))

	cleared := r.Clear(twice)
	assert.Empty(t, cleared.Items)
	assert.Nil(t, cleared.Promo)
	assert.Equal(t, cleared, r.Clear(cleared))
}

func TestDrawerDoesNotTouchTimestamp(t *testing.T) {
	r := NewReducer(StrictIdentity, stepClock())
	s := r.AddItem(Empty(), item("p1", 10, "", ""), 1)
	stamp := s.LastModifiedAt

	s = r.Reduce(s, OpenDrawer{})
	assert.True(t, s.IsOpen)
	s = r.Reduce(s, ToggleDrawer{})
	assert.False(t, s.IsOpen)
	s = r.Reduce(s, ToggleDrawer{})
	s = r.Reduce(s, CloseDrawer{})
	assert.False(t, s.IsOpen)

	assert.Equal(t, stamp, s.LastModifiedAt)
	assert.False(t, Durable(OpenDrawer{}))
	assert.True(t, Durable(AddItem{}))
}

func TestReduceDispatch(t *testing.T) {
	r := NewReducer("", stepClock())
	assert.Equal(t, StrictIdentity, r.Policy)

	s := r.Reduce(Empty(), AddItem{Item: item("p1", 1250, "", ""), Quantity: 1})
	s = r.Reduce(s, AddItem{Item: item("p1", 1250, "", ""), Quantity: 2})
	s = r.Reduce(s, SetQuantity{ID: "p1", Quantity: 1})
	require.Len(t, s.Items, 1)
	assert.Equal(t, 1, s.Items[0].Quantity)

	s = r.Reduce(s, RemoveItem{ID: "p1"})
	assert.Empty(t, s.Items)
}

func TestNewLineItem(t *testing.T) {
	p, err := catalog.Default().Get("h2")
	require.NoError(t, err)

	li, err := NewLineItem(p, Variant{})
	require.NoError(t, err)
	assert.Equal(t, 10, li.Limit())
	assert.Equal(t, 0, li.Quantity)

	p.Category = "toys"
	_, err = NewLineItem(p, Variant{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	bad := item("x", 100, "", "")
	bad.OriginalPrice = decimal.NewNullDecimal(decimal.NewFromInt(50))
	require.ErrorAs(t, bad.Validate(), &verr)
	assert.Equal(t, "originalPrice", verr.Field)
}
