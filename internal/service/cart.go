package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/domain"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type CartService struct {
	Repo  *repo.GormRepo
	Rules domain.PricingRules
}

type CartLineView struct {
	models.CartItem
	LineTotal float64 `json:"lineTotal"`
}

type CartView struct {
	Items []CartLineView `json:"items"`
	domain.Totals
}

// Get returns the cart priced with current catalog prices.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartLineView, 0, len(items))}
	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		if p, ok := products[it.ProductID]; ok {
			it.Price = p.Price
			it.ProductName = p.Name
			it.Image = p.Image
		}
		line := domain.Line{Price: it.Price, Quantity: it.Quantity}
		lines = append(lines, line)
		view.Items = append(view.Items, CartLineView{CartItem: it, LineTotal: line.Total().InexactFloat64()})
	}
	view.Totals = s.Rules.Price(lines)
	return view, nil
}

func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req transport.AddCartItemRequest) (*models.CartItem, error) {
	p, err := s.activeProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	item := models.CartItem{
		UserID:      userID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Quantity:    req.Quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SetQuantity overwrites a line's quantity; zero removes it and returns nil.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.CartItem, error) {
	if qty < 0 {
		return nil, validation("quantity must be at least 0")
	}
	item, err := s.Repo.SetCartQuantity(ctx, userID, productID, qty)
	if err != nil {
		return nil, orNotFound(err, "Item not found in cart")
	}
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return orNotFound(s.Repo.RemoveFromCart(ctx, userID, productID), "Item not found in cart")
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, userID)
}

// Replace overwrites the whole cart. Lines for the same product are merged.
func (s *CartService) Replace(ctx context.Context, userID uuid.UUID, req transport.ReplaceCartRequest) (*CartView, error) {
	merged := map[uuid.UUID]int{}
	order := []uuid.UUID{}
	for _, line := range req.Items {
		id, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, validation("invalid field: productId")
		}
		if _, seen := merged[id]; !seen {
			order = append(order, id)
		}
		merged[id] += line.Quantity
	}

	products, err := s.Repo.ProductsByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(order))
	for _, id := range order {
		p, ok := products[id]
		if !ok || !p.IsActive {
			return nil, notFound("Product not found")
		}
		items = append(items, models.CartItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       p.Price,
			Image:       p.Image,
			Quantity:    merged[id],
		})
	}
	if _, err := s.Repo.ReplaceCart(ctx, userID, items); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *CartService) activeProduct(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, validation("invalid field: productId")
	}
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, notFound("Product not found")
	}
	return p, nil
}
