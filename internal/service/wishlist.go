package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	return s.Repo.ListWishlist(ctx, userID)
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*models.Wishlist, error) {
	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, orNotFound(err, "Product not found")
	}
	w := models.Wishlist{
		UserID:      userID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Image:       p.Image,
	}
	if err := s.Repo.AddToWishlist(ctx, &w); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, conflict("Product already in wishlist")
		}
		return nil, err
	}
	return &w, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return orNotFound(s.Repo.RemoveFromWishlist(ctx, userID, productID), "Product not in wishlist")
}
