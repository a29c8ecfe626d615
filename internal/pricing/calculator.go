// Package pricing computes shipping and customs costs for forward
// requests from the rate reference tables. All math is fixed-point
// decimal; results are rounded to cents once, at the aggregate.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/fastybox/forwarding/internal/repository"
)

const GeneralCategory = "General"

var (
	// Used when the shipping table has no active rows at all.
	defaultMinBaseRate = decimal.RequireFromString("15.99")

	fallbackShippingRate = repository.ShippingRate{
		Name:            "Default",
		MinWeight:       decimal.Zero,
		MaxWeight:       decimal.RequireFromString("100"),
		BaseRate:        decimal.RequireFromString("39.99"),
		AdditionalPerKg: decimal.RequireFromString("2.5"),
		IsActive:        true,
	}

	fallbackCustomsRate = repository.CustomsRate{
		Name:           "Default",
		Category:       GeneralCategory,
		RatePercentage: decimal.RequireFromString("0.16"),
		MinimumFee:     decimal.RequireFromString("5.0"),
		IsActive:       true,
	}
)

// ShippingCost prices one item. An item without a declared weight is
// charged the cheapest active base rate until the warehouse weighs it.
func ShippingCost(item *repository.ForwardItem, rates []*repository.ShippingRate) decimal.Decimal {
	if item.DeclaredWeight == nil {
		if rate, ok := minActiveBaseRate(rates); ok {
			return rate
		}
		return defaultMinBaseRate
	}

	weight := *item.DeclaredWeight
	rate := applicableShippingRate(weight, rates)

	additionalWeight := decimal.Max(decimal.Zero, weight.Sub(rate.MinWeight))
	return rate.BaseRate.Add(additionalWeight.Mul(rate.AdditionalPerKg))
}

// CustomsFee charges a percentage of the declared value, floored at the
// category minimum.
func CustomsFee(item *repository.ForwardItem, rates []*repository.CustomsRate, category string) decimal.Decimal {
	rate := applicableCustomsRate(rates, category)
	fee := item.DeclaredValue.Mul(rate.RatePercentage)
	return decimal.Max(fee, rate.MinimumFee)
}

// EstimatedTotal sums shipping plus customs over all items and rounds the
// aggregate to two places. Items are never rounded individually; doing so
// would drift from the aggregate across many small lines.
func EstimatedTotal(items []*repository.ForwardItem, shippingRates []*repository.ShippingRate, customsRates []*repository.CustomsRate) decimal.Decimal {
	if len(items) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(ShippingCost(item, shippingRates))
		total = total.Add(CustomsFee(item, customsRates, GeneralCategory))
	}
	return total.Round(2)
}

func minActiveBaseRate(rates []*repository.ShippingRate) (decimal.Decimal, bool) {
	var min decimal.Decimal
	found := false
	for _, r := range rates {
		if !r.IsActive {
			continue
		}
		if !found || r.BaseRate.LessThan(min) {
			min = r.BaseRate
			found = true
		}
	}
	return min, found
}

func applicableShippingRate(weight decimal.Decimal, rates []*repository.ShippingRate) *repository.ShippingRate {
	for _, r := range rates {
		if r.IsActive && weight.GreaterThanOrEqual(r.MinWeight) && weight.LessThanOrEqual(r.MaxWeight) {
			return r
		}
	}

	// Overweight packages fall into the heaviest configured band.
	var heaviest *repository.ShippingRate
	for _, r := range rates {
		if !r.IsActive {
			continue
		}
		if heaviest == nil || r.MaxWeight.GreaterThan(heaviest.MaxWeight) {
			heaviest = r
		}
	}
	if heaviest != nil {
		return heaviest
	}
	return &fallbackShippingRate
}

func applicableCustomsRate(rates []*repository.CustomsRate, category string) *repository.CustomsRate {
	var general *repository.CustomsRate
	for _, r := range rates {
		if !r.IsActive {
			continue
		}
		if r.Category == category {
			return r
		}
		if r.Category == GeneralCategory {
			general = r
		}
	}
	if general != nil {
		return general
	}
	return &fallbackCustomsRate
}
