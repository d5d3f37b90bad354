package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/qrcode"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type OfferService struct {
	Repo  *repo.GormRepo
	Codes *qrcode.Generator
	Now   func() time.Time
}

type OfferCheck struct {
	Offer    *models.Offer `json:"offer"`
	Discount *float64      `json:"discount,omitempty"`
}

func (s *OfferService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OfferService) Active(ctx context.Context) ([]models.Offer, error) {
	return s.Repo.ActiveOffers(ctx, s.now())
}

func (s *OfferService) Create(ctx context.Context, req transport.CreateOfferRequest) (*models.Offer, error) {
	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, validation("validUntil must be after validFrom")
	}
	o := models.Offer{
		Code:                 req.Code,
		Description:          req.Description,
		DiscountType:         req.DiscountType,
		DiscountValue:        req.DiscountValue,
		MinCartValue:         req.MinCartValue,
		MaxDiscount:          req.MaxDiscount,
		ApplicableCategories: req.ApplicableCategories,
		ValidFrom:            req.ValidFrom.UTC(),
		ValidUntil:           req.ValidUntil.UTC(),
		UsageLimit:           req.UsageLimit,
		IsActive:             true,
		TermsAndConditions:   req.TermsAndConditions,
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}
	if o.ApplicableCategories == nil {
		o.ApplicableCategories = []string{}
	}
	if err := s.Repo.CreateOffer(ctx, &o); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, conflict("Coupon code already exists")
		}
		return nil, err
	}
	return &o, nil
}

// Validate checks a code without redeeming it. Expiry is reported before the
// usage limit, so an expired and exhausted coupon reads as expired.
func (s *OfferService) Validate(ctx context.Context, code string, cartValue *float64) (*OfferCheck, error) {
	if strings.TrimSpace(code) == "" {
		return nil, validation("missing required field: code")
	}
	o, err := s.Repo.OfferByCode(ctx, code)
	if err != nil {
		return nil, orNotFound(err, "Coupon code not found")
	}
	c := repo.CouponOf(*o)
	if err := c.Check(s.now()); err != nil {
		return nil, validation("%s", err.Error())
	}

	out := &OfferCheck{Offer: o}
	if cartValue != nil {
		amount, err := c.Discount(*cartValue)
		if err != nil {
			if errors.Is(err, domain.ErrCouponMinCart) || errors.Is(err, domain.ErrCouponNotApply) {
				return nil, validation("%s", err.Error())
			}
			return nil, err
		}
		out.Discount = &amount
	}
	return out, nil
}

func (s *OfferService) QR(ctx context.Context, code string) ([]byte, error) {
	o, err := s.Repo.OfferByCode(ctx, code)
	if err != nil {
		return nil, orNotFound(err, "Coupon code not found")
	}
	return s.Codes.CouponPNG(o.Code)
}
