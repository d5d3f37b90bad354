package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/models"
)

type CheckoutInput struct {
	UserID     uuid.UUID
	Address    models.DeliveryAddress
	CouponCode string
	Notes      string
	Rules      domain.PricingRules
	Now        time.Time
}

// Checkout turns the user's cart into an order. Prices come from the catalog,
// never from the cart snapshot. Stock, coupon usage, the order and the cart
// all change in the same transaction.
func (r *GormRepo) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := tx.Where("user_id = ?", in.UserID).Order("created_at ASC").Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		ids := make([]uuid.UUID, 0, len(cart))
		for _, c := range cart {
			ids = append(ids, c.ProductID)
		}
		var products []models.Product
		if err := forUpdate(tx).Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		byID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		items := make([]models.OrderItem, 0, len(cart))
		lines := make([]domain.Line, 0, len(cart))
		for _, c := range cart {
			p, ok := byID[c.ProductID]
			if !ok || !p.IsActive {
				return &LineError{ProductName: c.ProductName, Reason: "product is no longer available"}
			}
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", p.ID, c.Quantity).
				Update("stock", gorm.Expr("stock - ?", c.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &LineError{ProductName: p.Name, Reason: "insufficient stock"}
			}

			line := domain.Line{Price: p.Price, Quantity: c.Quantity}
			lines = append(lines, line)
			items = append(items, models.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Category:    p.Category,
				Quantity:    c.Quantity,
				Price:       p.Price,
				Total:       line.Total().InexactFloat64(),
			})
		}

		totals := in.Rules.Price(lines)
		order = models.Order{
			UserID:          in.UserID,
			Items:           items,
			Subtotal:        totals.Subtotal,
			Discount:        totals.Discount,
			DeliveryCharge:  totals.DeliveryCharge,
			TotalPrice:      totals.Total,
			DeliveryAddress: in.Address,
			Status:          models.OrderPending,
			PaymentStatus:   models.PaymentPending,
			OrderNotes:      in.Notes,
		}

		if code := strings.ToUpper(strings.TrimSpace(in.CouponCode)); code != "" {
			amount, err := applyCoupon(tx, code, items, in.Now)
			if err != nil {
				return err
			}
			order.CouponCode = code
			order.CouponDiscount = amount
			total := decimal.NewFromFloat(totals.Total).Sub(decimal.NewFromFloat(amount))
			if total.IsNegative() {
				total = decimal.Zero
			}
			order.TotalPrice = total.InexactFloat64()
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", in.UserID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// applyCoupon validates and redeems code against the items it covers.
func applyCoupon(tx *gorm.DB, code string, items []models.OrderItem, now time.Time) (float64, error) {
	var offer models.Offer
	if err := forUpdate(tx).Where("code = ?", code).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCouponNotFound
		}
		return 0, err
	}
	c := CouponOf(offer)
	if err := c.Check(now); err != nil {
		return 0, err
	}

	eligible := decimal.Zero
	for _, it := range items {
		if appliesTo(offer.ApplicableCategories, it.Category) {
			eligible = eligible.Add(decimal.NewFromFloat(it.Total))
		}
	}
	amount, err := c.Discount(eligible.InexactFloat64())
	if err != nil {
		return 0, err
	}

	ok, err := redeemOffer(tx, offer.ID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrCouponExhausted
	}
	return amount, nil
}

func appliesTo(categories []string, category string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func CouponOf(o models.Offer) domain.Coupon {
	return domain.Coupon{
		DiscountType:  o.DiscountType,
		DiscountValue: o.DiscountValue,
		MinCartValue:  o.MinCartValue,
		MaxDiscount:   o.MaxDiscount,
		ValidFrom:     o.ValidFrom,
		ValidUntil:    o.ValidUntil,
		UsageLimit:    o.UsageLimit,
		UsedCount:     o.UsedCount,
		IsActive:      o.IsActive,
	}
}

type OrderFilter struct {
	UserID *uuid.UUID
	Status string
	Offset int
	Limit  int
}

func (f OrderFilter) apply(q *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter) (int64, []models.Order, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Order{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	orders := []models.Order{}
	if err := f.apply(r.DB.WithContext(ctx)).Preload("Items").
		Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// GetOrder loads an order with its items. A non-nil owner restricts the
// lookup to that user's orders.
func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.Order, error) {
	q := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id)
	if owner != nil {
		q = q.Where("user_id = ?", *owner)
	}
	var o models.Order
	if err := q.First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderUpdate struct {
	Status        string
	PaymentStatus string
}

// UpdateOrder moves an order through its state machines. Cancelling puts the
// items' quantities back into stock.
func (r *GormRepo) UpdateOrder(ctx context.Context, id uuid.UUID, owner *uuid.UUID, up OrderUpdate) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := forUpdate(tx).Preload("Items").Where("id = ?", id)
		if owner != nil {
			q = q.Where("user_id = ?", *owner)
		}
		if err := q.First(&o).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if up.Status != "" && up.Status != o.Status {
			if err := domain.CanMoveOrder(o.Status, up.Status); err != nil {
				return err
			}
			updates["status"] = up.Status
		}
		if up.PaymentStatus != "" && up.PaymentStatus != o.PaymentStatus {
			if err := domain.CanMovePayment(o.PaymentStatus, up.PaymentStatus); err != nil {
				return err
			}
			updates["payment_status"] = up.PaymentStatus
		}
		if len(updates) == 0 {
			return nil
		}

		if updates["status"] == models.OrderCancelled {
			for _, it := range o.Items {
				if err := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).
					Update("stock", gorm.Expr("stock + ?", it.Quantity)).Error; err != nil {
					return err
				}
			}
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", o.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Items").Where("id = ?", o.ID).First(&o).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}
