package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCouponInactive  = errors.New("Coupon code is inactive")
	ErrCouponExpired   = errors.New("Coupon code has expired")
	ErrCouponExhausted = errors.New("Coupon usage limit exceeded")
	ErrCouponMinCart   = errors.New("Cart value is below the coupon minimum")
	ErrCouponNotApply  = errors.New("Coupon does not apply to any item in the cart")
)

type Coupon struct {
	DiscountType  string
	DiscountValue float64
	MinCartValue  float64
	MaxDiscount   float64
	ValidFrom     time.Time
	ValidUntil    time.Time
	UsageLimit    int
	UsedCount     int
	IsActive      bool
}

// Check runs the redemption checks in order: active flag, validity window,
// usage limit. A zero usage limit means unlimited.
func (c Coupon) Check(now time.Time) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return ErrCouponExpired
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return ErrCouponExhausted
	}
	return nil
}

// Discount returns the coupon amount for an eligible cart value, floored to
// whole rupees and never more than the value itself.
func (c Coupon) Discount(eligible float64) (float64, error) {
	value := decimal.NewFromFloat(eligible)
	if value.LessThanOrEqual(decimal.Zero) {
		return 0, ErrCouponNotApply
	}
	if c.MinCartValue > 0 && value.LessThan(decimal.NewFromFloat(c.MinCartValue)) {
		return 0, ErrCouponMinCart
	}

	var amount decimal.Decimal
	switch c.DiscountType {
	case "percentage":
		amount = value.Mul(decimal.NewFromFloat(c.DiscountValue)).Div(decimal.NewFromInt(100)).Floor()
	default:
		amount = decimal.NewFromFloat(c.DiscountValue)
	}
	if c.MaxDiscount > 0 {
		amount = decimal.Min(amount, decimal.NewFromFloat(c.MaxDiscount))
	}
	amount = decimal.Min(amount, value)
	return amount.InexactFloat64(), nil
}
