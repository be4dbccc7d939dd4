package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoelle/storefront-go/internal/promo"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

var thankYou10 = promo.Code{
	Code:          "THANKYOU10",
	DiscountValue: decimal.NewFromInt(10),
	Kind:          promo.KindPercentage,
	MinOrder:      decimal.NewFromInt(200),
}

func TestSummarize(t *testing.T) {
	tests := map[string]struct {
		lines []LineItem
		promo *promo.Code
		want  Summary
	}{
		"below free shipping": {
			lines: []LineItem{withQty(item("b2", 300, "", ""), 1)},
			want:  Summary{Subtotal: dec("300"), Discount: dec("0"), ShippingCost: dec("60"), Total: dec("360"), ItemCount: 1},
		},
		"free shipping with promo": {
			lines: []LineItem{withQty(item("h1", 600, "", ""), 1)},
			promo: &thankYou10,
			want:  Summary{Subtotal: dec("600"), Discount: dec("60"), ShippingCost: dec("0"), Total: dec("540"), ItemCount: 1},
		},
		"promo below its floor": {
			lines: []LineItem{withQty(item("b1", 150, "", ""), 1)},
			promo: &thankYou10,
			want:  Summary{Subtotal: dec("150"), Discount: dec("0"), ShippingCost: dec("60"), Total: dec("210"), ItemCount: 1},
		},
		"exactly at threshold": {
			lines: []LineItem{withQty(item("x", 250, "", ""), 2)},
			want:  Summary{Subtotal: dec("500"), Discount: dec("0"), ShippingCost: dec("0"), Total: dec("500"), ItemCount: 2},
		},
		"empty cart still pays shipping": {
			want: Summary{Subtotal: dec("0"), Discount: dec("0"), ShippingCost: dec("60"), Total: dec("60")},
		},
		"fixed promo capped at subtotal": {
			lines: []LineItem{withQty(item("x", 40, "", ""), 1)},
			promo: &promo.Code{Code: "BIG", DiscountValue: decimal.NewFromInt(1000), Kind: promo.KindFixed},
			want:  Summary{Subtotal: dec("40"), Discount: dec("40"), ShippingCost: dec("60"), Total: dec("60"), ItemCount: 1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := State{Items: tt.lines, Promo: tt.promo}
			got := s.Summarize(DefaultPricing())

			assert.True(t, got.Subtotal.Equal(tt.want.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, got.Discount.Equal(tt.want.Discount), "discount %s", got.Discount)
			assert.True(t, got.ShippingCost.Equal(tt.want.ShippingCost), "shipping %s", got.ShippingCost)
			assert.True(t, got.Total.Equal(tt.want.Total), "total %s", got.Total)
			assert.Equal(t, tt.want.ItemCount, got.ItemCount)
			assert.True(t, s.Total().Equal(got.Total))
		})
	}
}

func TestCustomPricing(t *testing.T) {
	p := Pricing{FreeShippingThreshold: dec("1000"), FlatShippingRate: dec("75")}
	s := State{Items: []LineItem{withQty(item("h1", 600, "", ""), 1)}}

	assert.True(t, s.Summarize(p).ShippingCost.Equal(dec("75")))
	assert.True(t, s.ShippingCost().IsZero())
}

func TestContains(t *testing.T) {
	s := State{Items: []LineItem{withQty(item("f1", 450, "S", "Black"), 1)}}
	assert.True(t, s.Contains("f1"))
	assert.False(t, s.Contains("f2"))
}

// Seeded random action sequences; each property must hold after every step.
func TestReducerProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	codes := []promo.Code{
		thankYou10,
		{Code: "FIX50", DiscountValue: dec("50"), Kind: promo.KindFixed},
		{Code: "HALF", DiscountValue: dec("50"), Kind: promo.KindPercentage, MinOrder: dec("1000")},
	}
	ids := []string{"a", "b", "c"}
	sizes := []string{"", "S", "M"}

	for _, policy := range []IdentityPolicy{StrictIdentity, LegacyIdentity} {
		r := NewReducer(policy, stepClock())
		s := Empty()

		for step := 0; step < 2000; step++ {
			li := item(ids[rng.Intn(len(ids))], int64(rng.Intn(400)), sizes[rng.Intn(len(sizes))], "")
			li.MaxQuantity = rng.Intn(12)

			var a Action
			switch rng.Intn(6) {
			case 0, 1:
				a = AddItem{Item: li, Quantity: rng.Intn(15)}
			case 2:
				a = SetQuantity{ID: li.ID, Quantity: rng.Intn(20) - 5, Size: li.Variant.Size}
			case 3:
				a = RemoveItem{ID: li.ID, Size: li.Variant.Size}
			case 4:
				a = ApplyPromo{Promo: codes[rng.Intn(len(codes))]}
			default:
				a = RemovePromo{}
			}
			s = r.Reduce(s, a)

			sum := s.Summarize(DefaultPricing())
			require.False(t, sum.Total.IsNegative())
			require.True(t, sum.Total.Equal(decimal.Max(decimal.Zero, sum.Subtotal.Sub(sum.Discount).Add(sum.ShippingCost))))
			if sum.Subtotal.GreaterThanOrEqual(dec("500")) {
				require.True(t, sum.ShippingCost.IsZero())
			} else {
				require.True(t, sum.ShippingCost.Equal(dec("60")))
			}

			seen := map[Key]bool{}
			for _, line := range s.Items {
				require.Positive(t, line.Quantity, "policy %s step %d", policy, step)
				require.False(t, seen[line.Key()], "duplicate line %v", line.Key())
				seen[line.Key()] = true
			}
		}
	}
}

func TestRepeatedAddsClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := NewReducer(StrictIdentity, stepClock())

	for trial := 0; trial < 200; trial++ {
		li := item("p", 10, "M", "Red")
		li.MaxQuantity = 1 + rng.Intn(20)

		s := Empty()
		total := 0
		for n := 1 + rng.Intn(10); n > 0; n-- {
			q := 1 + rng.Intn(8)
			total += q
			s = r.AddItem(s, li, q)
		}

		require.Len(t, s.Items, 1)
		assert.Equal(t, min(total, li.MaxQuantity), s.Items[0].Quantity)
	}
}

func withQty(li LineItem, q int) LineItem {
	li.Quantity = q
	return li
}
