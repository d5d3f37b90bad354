package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

const defaultRejectionReason = "Application rejected"

type VendorService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
	Events  events.Publisher
}

func (s *VendorService) ListByStatus(ctx context.Context, status string) ([]models.Vendor, error) {
	if status == "" {
		status = models.VendorPending
	}
	return s.Repo.VendorsByStatus(ctx, status)
}

// Act applies an admin action. Repeating an action that already holds is a
// no-op; any other move is a conflict.
func (s *VendorService) Act(ctx context.Context, id uuid.UUID, action domain.VendorAction, reason string) (*models.Vendor, error) {
	l := logging.FromContext(ctx).With("svc", "vendor.act", "vendor_id", id, "action", action)

	if action == domain.VendorReject && strings.TrimSpace(reason) == "" {
		reason = defaultRejectionReason
	}
	var from string
	v, err := s.Repo.TransitionVendor(ctx, id, reason, func(cur string) (string, error) {
		from = cur
		return domain.NextVendorStatus(cur, action)
	})
	if err != nil {
		if errors.Is(err, domain.ErrIllegalTransition) {
			l.Warn("vendor_transition_refused", "status", 409, "from", from)
			return nil, conflict("illegal vendor transition: cannot %s a %s vendor", action, from)
		}
		return nil, orNotFound(err, "Vendor not found")
	}

	if from != v.Status {
		events.Emit(ctx, s.Events, events.TopicVendors, events.New("vendor_status_changed", v.ID.String(), map[string]any{
			"from": from, "to": v.Status, "reason": reason,
		}))
	}
	return v, nil
}

// SetActive suspends or reactivates a vendor.
func (s *VendorService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Vendor, error) {
	action := domain.VendorSuspend
	if active {
		action = domain.VendorReactivate
	}
	return s.Act(ctx, id, action, "")
}

func (s *VendorService) Products(ctx context.Context, vendorID uuid.UUID, offset, limit int) (*ProductPage, error) {
	total, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{
		VendorID:      &vendorID,
		IncludeHidden: true,
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}
	return &ProductPage{Total: total, Items: items}, nil
}

func (s *VendorService) CreateProduct(ctx context.Context, vendorID uuid.UUID, req transport.CreateProductRequest) (*models.Product, error) {
	v, err := s.verified(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return s.Catalog.Create(ctx, req, v)
}

// verified loads the vendor and refuses any account that is not currently
// verified, so a suspension takes effect on sessions opened before it.
func (s *VendorService) verified(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	v, err := s.Repo.VendorByID(ctx, vendorID)
	if err != nil {
		return nil, orNotFound(err, "Vendor not found")
	}
	if v.Status != models.VendorVerified {
		logging.FromContext(ctx).Warn("vendor_write_denied", "status", 403, "vendor_id", vendorID, "vendor_status", v.Status)
		return nil, forbidden("Your vendor account is not verified")
	}
	return v, nil
}

func (s *VendorService) UpdateProduct(ctx context.Context, vendorID, productID uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	if err := s.owns(ctx, vendorID, productID); err != nil {
		return nil, err
	}
	return s.Catalog.Update(ctx, productID, req)
}

func (s *VendorService) DeleteProduct(ctx context.Context, vendorID, productID uuid.UUID) error {
	if err := s.owns(ctx, vendorID, productID); err != nil {
		return err
	}
	return s.Catalog.Delete(ctx, productID)
}

func (s *VendorService) owns(ctx context.Context, vendorID, productID uuid.UUID) error {
	if _, err := s.verified(ctx, vendorID); err != nil {
		return err
	}
	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return orNotFound(err, "Product not found")
	}
	if p.VendorID == nil || *p.VendorID != vendorID {
		logging.FromContext(ctx).Warn("vendor_ownership_denied", "status", 403, "vendor_id", vendorID, "product_id", productID)
		return forbidden("Unauthorized")
	}
	return nil
}
