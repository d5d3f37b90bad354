package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCoupon(now time.Time) Coupon {
	return Coupon{
		DiscountType:  "percentage",
		DiscountValue: 20,
		ValidFrom:     now.Add(-time.Hour),
		ValidUntil:    now.Add(time.Hour),
		UsageLimit:    5,
		UsedCount:     1,
		IsActive:      true,
	}
}

func TestCouponCheck(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*Coupon)
		want   error
	}{
		{"valid", func(*Coupon) {}, nil},
		{"inactive", func(c *Coupon) { c.IsActive = false }, ErrCouponInactive},
		{"not started", func(c *Coupon) { c.ValidFrom = now.Add(time.Minute) }, ErrCouponExpired},
		{"ended", func(c *Coupon) { c.ValidUntil = now.Add(-time.Minute) }, ErrCouponExpired},
		{"expired with usage left", func(c *Coupon) { c.ValidUntil = now.Add(-time.Minute); c.UsedCount = 0 }, ErrCouponExpired},
		{"at limit inside window", func(c *Coupon) { c.UsedCount = 5 }, ErrCouponExhausted},
		{"over limit inside window", func(c *Coupon) { c.UsedCount = 9 }, ErrCouponExhausted},
		{"unlimited", func(c *Coupon) { c.UsageLimit = 0; c.UsedCount = 1000 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := validCoupon(now)
			tt.mutate(&c)
			err := c.Check(now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCouponCheck_ExpiredAndExhaustedIsRejected(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := validCoupon(now)
	c.ValidUntil = now.Add(-time.Hour)
	c.UsedCount = c.UsageLimit

	require.Error(t, c.Check(now))
}

func TestCouponDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		coupon   Coupon
		eligible float64
		want     float64
		err      error
	}{
		{"percentage floored", Coupon{DiscountType: "percentage", DiscountValue: 15}, 333, 49, nil},
		{"percentage capped", Coupon{DiscountType: "percentage", DiscountValue: 50, MaxDiscount: 100}, 1000, 100, nil},
		{"fixed", Coupon{DiscountType: "fixed", DiscountValue: 75}, 500, 75, nil},
		{"fixed larger than cart", Coupon{DiscountType: "fixed", DiscountValue: 75}, 40, 40, nil},
		{"below minimum", Coupon{DiscountType: "fixed", DiscountValue: 75, MinCartValue: 500}, 499, 0, ErrCouponMinCart},
		{"nothing eligible", Coupon{DiscountType: "fixed", DiscountValue: 75}, 0, 0, ErrCouponNotApply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.coupon.Discount(tt.eligible)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
