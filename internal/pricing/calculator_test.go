package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fastybox/forwarding/internal/pricing"
	"github.com/fastybox/forwarding/internal/repository"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func assertDecimal(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func testShippingRates() []*repository.ShippingRate {
	return []*repository.ShippingRate{
		{ID: 1, Name: "Light", MinWeight: d("0"), MaxWeight: d("2"), BaseRate: d("15.99"), AdditionalPerKg: d("0"), IsActive: true},
		{ID: 2, Name: "Medium", MinWeight: d("2.01"), MaxWeight: d("5"), BaseRate: d("25.99"), AdditionalPerKg: d("2.5"), IsActive: true},
		{ID: 3, Name: "Heavy", MinWeight: d("5.01"), MaxWeight: d("10"), BaseRate: d("39.99"), AdditionalPerKg: d("3.75"), IsActive: true},
		{ID: 4, Name: "Extra heavy", MinWeight: d("10.01"), MaxWeight: d("50"), BaseRate: d("59.99"), AdditionalPerKg: d("5.0"), IsActive: true},
	}
}

func testCustomsRates() []*repository.CustomsRate {
	return []*repository.CustomsRate{
		{ID: 1, Name: "Standard", Category: "General", RatePercentage: d("0.16"), MinimumFee: d("5.0"), IsActive: true},
		{ID: 2, Name: "Electronics", Category: "Technology", RatePercentage: d("0.19"), MinimumFee: d("10.0"), IsActive: true},
	}
}

func TestShippingCost(t *testing.T) {
	rates := testShippingRates()

	t.Run("weight inside band", func(t *testing.T) {
		item := &repository.ForwardItem{DeclaredWeight: dp("1.5")}
		assertDecimal(t, d("15.99"), pricing.ShippingCost(item, rates))
	})

	t.Run("additional per kg charged above band minimum", func(t *testing.T) {
		// Medium band: 25.99 + (3 - 2.01) * 2.5
		item := &repository.ForwardItem{DeclaredWeight: dp("3")}
		assertDecimal(t, d("28.465"), pricing.ShippingCost(item, rates))
	})

	t.Run("cost at band minimum equals base rate", func(t *testing.T) {
		item := &repository.ForwardItem{DeclaredWeight: dp("2.01")}
		assertDecimal(t, d("25.99"), pricing.ShippingCost(item, rates))
	})

	t.Run("no declared weight uses cheapest active base rate", func(t *testing.T) {
		item := &repository.ForwardItem{}
		assertDecimal(t, d("15.99"), pricing.ShippingCost(item, rates))
	})

	t.Run("no declared weight and no rates uses default", func(t *testing.T) {
		item := &repository.ForwardItem{}
		assertDecimal(t, d("15.99"), pricing.ShippingCost(item, nil))
	})

	t.Run("overweight falls into heaviest band", func(t *testing.T) {
		// 59.99 + (60 - 10.01) * 5.0
		item := &repository.ForwardItem{DeclaredWeight: dp("60")}
		assertDecimal(t, d("309.94"), pricing.ShippingCost(item, rates))
	})

	t.Run("inactive rates are skipped", func(t *testing.T) {
		inactive := []*repository.ShippingRate{
			{MinWeight: d("0"), MaxWeight: d("2"), BaseRate: d("1.00"), IsActive: false},
			{MinWeight: d("0"), MaxWeight: d("5"), BaseRate: d("20.00"), AdditionalPerKg: d("1.0"), IsActive: true},
		}
		item := &repository.ForwardItem{DeclaredWeight: dp("1")}
		assertDecimal(t, d("21.00"), pricing.ShippingCost(item, inactive))
	})

	t.Run("no active bands at all uses fallback rate", func(t *testing.T) {
		// Fallback band: 39.99 + 7 * 2.5
		item := &repository.ForwardItem{DeclaredWeight: dp("7")}
		assertDecimal(t, d("57.49"), pricing.ShippingCost(item, nil))
	})
}

func TestCustomsFee(t *testing.T) {
	rates := testCustomsRates()

	t.Run("percentage of declared value", func(t *testing.T) {
		item := &repository.ForwardItem{DeclaredValue: d("50")}
		assertDecimal(t, d("8"), pricing.CustomsFee(item, rates, "General"))
	})

	t.Run("minimum fee floor", func(t *testing.T) {
		item := &repository.ForwardItem{DeclaredValue: d("10")}
		assertDecimal(t, d("5.0"), pricing.CustomsFee(item, rates, "General"))
	})

	t.Run("category specific rate", func(t *testing.T) {
		item := &repository.ForwardItem{DeclaredValue: d("100")}
		assertDecimal(t, d("19"), pricing.CustomsFee(item, rates, "Technology"))
	})

	t.Run("unknown category falls back to general", func(t *testing.T) {
		item := &repository.ForwardItem{DeclaredValue: d("100")}
		assertDecimal(t, d("16"), pricing.CustomsFee(item, rates, "Toys"))
	})

	t.Run("empty table uses default rate", func(t *testing.T) {
		item := &repository.ForwardItem{DeclaredValue: d("100")}
		assertDecimal(t, d("16"), pricing.CustomsFee(item, nil, "General"))
	})
}

func TestEstimatedTotal(t *testing.T) {
	t.Run("no items is zero", func(t *testing.T) {
		assertDecimal(t, decimal.Zero, pricing.EstimatedTotal(nil, testShippingRates(), testCustomsRates()))
	})

	t.Run("shipping plus customs per item", func(t *testing.T) {
		items := []*repository.ForwardItem{
			{DeclaredWeight: dp("1.5"), DeclaredValue: d("50")},
		}
		// 15.99 shipping + 8.00 customs
		assertDecimal(t, d("23.99"), pricing.EstimatedTotal(items, testShippingRates(), testCustomsRates()))
	})

	t.Run("rounds the aggregate once, not per item", func(t *testing.T) {
		rates := []*repository.ShippingRate{
			{MinWeight: d("0"), MaxWeight: d("2"), BaseRate: d("1.115"), IsActive: true},
		}
		customs := []*repository.CustomsRate{
			{Category: "General", RatePercentage: d("0.16"), MinimumFee: d("0"), IsActive: true},
		}
		items := []*repository.ForwardItem{{}, {}, {}}

		// Per-item rounding would give 1.12 * 3 = 3.36; the sum 3.345
		// rounds to 3.35.
		assertDecimal(t, d("3.35"), pricing.EstimatedTotal(items, rates, customs))
	})
}
