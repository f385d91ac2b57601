package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func qtyPtr(s string) *decimal.Decimal {
	d := qty(s)
	return &d
}

func perUnit(id string, price *Money, step string, maxQty *decimal.Decimal) AddOnItem {
	return AddOnItem{ID: id, Label: id, Kind: AddOnPerUnit, Price: price, UnitStep: qty(step), MaxQuantity: maxQty}
}

// assertQuantities compares selections by decimal value.
func assertQuantities(t *testing.T, want map[string]string, got AddOnSelections) {
	t.Helper()
	require.Len(t, got, len(want))
	for id, q := range want {
		v, ok := got[id]
		require.True(t, ok, "missing %s", id)
		assert.True(t, v.Equal(qty(q)), "%s: want %s, got %s", id, q, v)
	}
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name      string
		step      string
		maxQty    *decimal.Decimal
		requested string
		want      string
	}{
		{"clamps to max", "1", qtyPtr("3"), "10", "3"},
		{"within range", "1", qtyPtr("3"), "2", "2"},
		{"negative is zero", "1", qtyPtr("3"), "-4", "0"},
		{"no max", "1", nil, "250", "250"},
		{"floors to step", "5", nil, "12", "10"},
		{"below one step", "5", nil, "4", "0"},
		{"max floored to step", "2", qtyPtr("3"), "10", "2"},
		{"zero step treated as one", "0", qtyPtr("3"), "2", "2"},
		{"negative max", "1", qtyPtr("-1"), "2", "0"},
		{"fractional step", "0.5", nil, "2.7", "2.5"},
		{"fractional step exact multiple", "0.25", nil, "1.75", "1.75"},
		{"fractional request on whole step", "1", nil, "2.5", "2"},
		{"fractional max", "1", qtyPtr("2.5"), "10", "2"},
		{"fractional max and step", "0.5", qtyPtr("2.75"), "10", "2.5"},
		{"fractional request below fractional max", "0.5", qtyPtr("2.75"), "1.5", "1.5"},
		{"third step", "0.3", nil, "1", "0.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := perUnit("x", MustMoney(1, 1), tt.step, tt.maxQty)
			got := ClampQuantity(item, qty(tt.requested))
			assert.True(t, got.Equal(qty(tt.want)), "want %s, got %s", tt.want, got)
		})
	}
}

func TestMergeCatalog(t *testing.T) {
	builtin := BuiltinEditingWebsite(MustMoney(125, 4))

	t.Run("adds missing builtin sorted first", func(t *testing.T) {
		external := []AddOnItem{
			{ID: "seo", Kind: AddOnFlat, Price: MustMoney(10, 1), SortOrder: 2},
			{ID: "logo", Kind: AddOnFlat, Price: MustMoney(20, 1), SortOrder: 1},
		}
		merged := MergeCatalog(external, []AddOnItem{builtin})

		require.Len(t, merged, 3)
		assert.Equal(t, BuiltinEditingWebsiteID, merged[0].ID)
		assert.Equal(t, "logo", merged[1].ID)
		assert.Equal(t, "seo", merged[2].ID)
	})

	t.Run("external entry wins over builtin with same id", func(t *testing.T) {
		external := []AddOnItem{{ID: BuiltinEditingWebsiteID, Label: "Custom editing", Kind: AddOnPerUnit, Price: MustMoney(50, 1)}}
		merged := MergeCatalog(external, []AddOnItem{builtin})

		require.Len(t, merged, 1)
		assert.Equal(t, "Custom editing", merged[0].Label)
	})

	t.Run("duplicate external ids keep the first", func(t *testing.T) {
		external := []AddOnItem{
			{ID: "seo", Label: "first", Kind: AddOnFlat, Price: MustMoney(1, 1)},
			{ID: "seo", Label: "second", Kind: AddOnFlat, Price: MustMoney(2, 1)},
		}
		merged := MergeCatalog(external, nil)
		require.Len(t, merged, 1)
		assert.Equal(t, "first", merged[0].Label)
	})
}

func TestSumAddOns(t *testing.T) {
	catalog := []AddOnItem{
		{ID: "seo", Label: "SEO", Kind: AddOnFlat, Price: MustMoney(25, 1)},
		perUnit("pages", MustMoney(10, 1), "1", qtyPtr("3")),
		perUnit("emails", MustMoney(2, 1), "5", nil),
		perUnit("storage", MustMoney(8, 1), "0.5", nil),
	}

	t.Run("flat and per unit", func(t *testing.T) {
		total, err := SumAddOns(catalog, AddOnSelections{"seo": qty("1"), "pages": qty("10"), "emails": qty("12")})
		require.NoError(t, err)
		// 25 + 10*3 + 2*10
		assert.True(t, total.Total.Equals(MustMoney(75, 1)), "got %s", total.Total)
		require.Len(t, total.Lines, 3)
		assert.Equal(t, "3", total.Lines[1].Quantity.String())
		assert.Equal(t, "10", total.Lines[2].Quantity.String())
	})

	t.Run("fractional quantity is priced exactly", func(t *testing.T) {
		total, err := SumAddOns(catalog, AddOnSelections{"storage": qty("2.75")})
		require.NoError(t, err)
		require.Len(t, total.Lines, 1)
		assert.Equal(t, "2.5", total.Lines[0].Quantity.String())
		// 8 * 2.5
		assert.True(t, total.Total.Equals(MustMoney(20, 1)), "got %s", total.Total)
	})

	t.Run("absent and zero selections contribute nothing", func(t *testing.T) {
		total, err := SumAddOns(catalog, AddOnSelections{"seo": qty("0"), "unknown": qty("4")})
		require.NoError(t, err)
		assert.True(t, total.Total.IsZero())
		assert.Empty(t, total.Lines)
	})

	t.Run("nil selections", func(t *testing.T) {
		total, err := SumAddOns(catalog, nil)
		require.NoError(t, err)
		assert.True(t, total.Total.IsZero())
	})

	t.Run("negative catalog price is rejected", func(t *testing.T) {
		bad := []AddOnItem{{ID: "bad", Kind: AddOnFlat, Price: MustMoney(-1, 1)}}
		_, err := SumAddOns(bad, AddOnSelections{"bad": qty("1")})
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		bad := []AddOnItem{{ID: "bad", Kind: "bundle", Price: MustMoney(1, 1)}}
		_, err := SumAddOns(bad, AddOnSelections{"bad": qty("1")})
		assert.ErrorIs(t, err, ErrInvalidAddOnKind)
	})
}
