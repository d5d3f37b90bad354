package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

type OrderService struct {
	Repo          *repo.GormRepo
	Rules         domain.PricingRules
	Events        events.Publisher
	Notifications *NotificationService
	Catalog       *CatalogService
	Now           func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req transport.CheckoutRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout", "user_id", userID)

	var addr models.DeliveryAddress
	switch {
	case req.AddressID != "":
		id, err := uuid.Parse(req.AddressID)
		if err != nil {
			return nil, validation("invalid field: addressId")
		}
		a, err := s.Repo.GetAddress(ctx, id, userID)
		if err != nil {
			return nil, orNotFound(err, "Address not found")
		}
		addr = a.Delivery()
	case req.DeliveryAddress != nil:
		addr = req.DeliveryAddress.Model()
	default:
		return nil, validation("missing required field: deliveryAddress")
	}
	if addr.Country == "" {
		addr.Country = "India"
	}

	order, err := s.Repo.Checkout(ctx, repo.CheckoutInput{
		UserID:     userID,
		Address:    addr,
		CouponCode: req.CouponCode,
		Notes:      req.OrderNotes,
		Rules:      s.Rules,
		Now:        s.now(),
	})
	if err != nil {
		var lineErr *repo.LineError
		switch {
		case errors.Is(err, repo.ErrEmptyCart):
			return nil, validation("Cart is empty")
		case errors.As(err, &lineErr):
			return nil, conflict("%s", lineErr.Error())
		case errors.Is(err, repo.ErrCouponNotFound):
			return nil, notFound("Coupon code not found")
		case isCouponError(err):
			return nil, validation("%s", err.Error())
		}
		l.Error("checkout_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("order_created", "order_id", order.ID, "total", order.TotalPrice)
	s.Catalog.Touch(ctx, itemProducts(order)...)
	events.Emit(ctx, s.Events, events.TopicOrders, events.New("order_created", order.ID.String(), map[string]any{
		"userId": userID, "total": order.TotalPrice, "items": len(order.Items), "couponCode": order.CouponCode,
	}))
	s.notify(ctx, order, "Order placed", fmt.Sprintf("Your order of ₹%.2f has been placed.", order.TotalPrice))
	return order, nil
}

func itemProducts(o *models.Order) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func isCouponError(err error) bool {
	for _, target := range []error{
		domain.ErrCouponInactive, domain.ErrCouponExpired, domain.ErrCouponExhausted,
		domain.ErrCouponMinCart, domain.ErrCouponNotApply,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *OrderService) List(ctx context.Context, userID *uuid.UUID, status string, offset, limit int) (int64, []models.Order, error) {
	if status != "" && !domain.IsOrderStatus(status) {
		return 0, nil, validation("status must be one of: pending, confirmed, shipped, delivered, cancelled")
	}
	return s.Repo.ListOrders(ctx, repo.OrderFilter{UserID: userID, Status: status, Offset: offset, Limit: limit})
}

// Get returns an order; a non-nil owner limits the lookup to that user.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id, owner)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	return o, nil
}

func (s *OrderService) Cancel(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	return s.update(ctx, id, &userID, repo.OrderUpdate{Status: models.OrderCancelled})
}

func (s *OrderService) AdminUpdate(ctx context.Context, id uuid.UUID, req transport.OrderStatusRequest) (*models.Order, error) {
	if req.Status == "" && req.PaymentStatus == "" {
		return nil, validation("missing required field: status")
	}
	return s.update(ctx, id, nil, repo.OrderUpdate{Status: req.Status, PaymentStatus: req.PaymentStatus})
}

func (s *OrderService) update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, up repo.OrderUpdate) (*models.Order, error) {
	before, err := s.Repo.GetOrder(ctx, id, owner)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	o, err := s.Repo.UpdateOrder(ctx, id, owner, up)
	if err != nil {
		if errors.Is(err, domain.ErrIllegalTransition) {
			return nil, conflict("%s", err.Error())
		}
		return nil, orNotFound(err, "Order not found")
	}

	if o.Status != before.Status || o.PaymentStatus != before.PaymentStatus {
		events.Emit(ctx, s.Events, events.TopicOrders, events.New("order_status_changed", o.ID.String(), map[string]any{
			"from": before.Status, "to": o.Status, "paymentStatus": o.PaymentStatus,
		}))
	}
	if o.Status == models.OrderCancelled && before.Status != models.OrderCancelled {
		s.Catalog.Touch(ctx, itemProducts(o)...)
	}
	if o.Status != before.Status {
		s.notify(ctx, o, "Order "+o.Status, fmt.Sprintf("Your order is now %s.", o.Status))
	}
	return o, nil
}

func (s *OrderService) notify(ctx context.Context, o *models.Order, title, msg string) {
	if s.Notifications == nil {
		return
	}
	typ := "order"
	if o.Status == models.OrderShipped || o.Status == models.OrderDelivered {
		typ = "delivery"
	}
	id := o.ID
	if _, err := s.Notifications.Push(ctx, &models.Notification{
		UserID:    o.UserID,
		Type:      typ,
		Title:     title,
		Message:   msg,
		RelatedID: &id,
		ActionURL: "/orders/" + o.ID.String(),
	}); err != nil {
		logging.FromContext(ctx).Warn("notify_failed", "order_id", o.ID, "error", err)
	}
}
