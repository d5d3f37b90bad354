// Package domain holds the storefront rules that do not touch storage:
// cart pricing, coupon checks and the vendor and order state machines.
package domain

import "github.com/shopspring/decimal"

type PricingRules struct {
	DiscountPercent       float64
	FreeDeliveryThreshold float64
	DeliveryFee           float64
}

func DefaultPricingRules() PricingRules {
	return PricingRules{DiscountPercent: 10, FreeDeliveryThreshold: 299, DeliveryFee: 49}
}

type Line struct {
	Price    float64
	Quantity int
}

func (l Line) Total() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	Discount        float64 `json:"discount"`
	DiscountedTotal float64 `json:"discountedTotal"`
	DeliveryCharge  float64 `json:"deliveryCharge"`
	Total           float64 `json:"total"`
	TotalItems      int     `json:"totalItems"`
}

// Price computes cart totals. The store discount is floored to whole rupees and
// delivery is free once the discounted total is strictly above the threshold.
// An empty cart costs nothing.
func (r PricingRules) Price(lines []Line) Totals {
	subtotal := decimal.Zero
	items := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
		items += l.Quantity
	}
	if items == 0 {
		return Totals{}
	}

	discount := subtotal.Mul(decimal.NewFromFloat(r.DiscountPercent)).Div(decimal.NewFromInt(100)).Floor()
	discounted := subtotal.Sub(discount)

	delivery := decimal.NewFromFloat(r.DeliveryFee)
	if discounted.GreaterThan(decimal.NewFromFloat(r.FreeDeliveryThreshold)) {
		delivery = decimal.Zero
	}

	return Totals{
		Subtotal:        subtotal.InexactFloat64(),
		Discount:        discount.InexactFloat64(),
		DiscountedTotal: discounted.InexactFloat64(),
		DeliveryCharge:  delivery.InexactFloat64(),
		Total:           discounted.Add(delivery).InexactFloat64(),
		TotalItems:      items,
	}
}

// Round2 rounds a money amount to paise.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
