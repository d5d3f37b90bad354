package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const couponScheme = "medstore:coupon:"

type Generator struct {
	size  int
	level qrcode.RecoveryLevel
}

// New maps the configured recovery letter (L, M, Q, H) onto go-qrcode levels.
// Unknown letters fall back to Medium.
func New(size int, recovery string) *Generator {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(recovery) {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = 256
	}
	return &Generator{size: size, level: level}
}

func (g *Generator) CouponPNG(code string) ([]byte, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("empty coupon code")
	}
	qr, err := qrcode.New(couponScheme+strings.ToUpper(code), g.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}
	png, err := qr.PNG(g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to render PNG: %w", err)
	}
	return png, nil
}

// ParseCoupon extracts the coupon code from a scanned payload.
func ParseCoupon(payload string) (string, error) {
	if !strings.HasPrefix(payload, couponScheme) {
		return "", fmt.Errorf("not a coupon payload: %q", payload)
	}
	code := strings.TrimPrefix(payload, couponScheme)
	if code == "" {
		return "", fmt.Errorf("empty coupon code")
	}
	return code, nil
}
