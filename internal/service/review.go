package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type ReviewService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
}

type ReviewList struct {
	Reviews       []models.Review `json:"reviews"`
	Total         int             `json:"total"`
	AverageRating float64         `json:"averageRating"`
}

func (s *ReviewService) ForProduct(ctx context.Context, productID uuid.UUID) (*ReviewList, error) {
	reviews, err := s.Repo.ReviewsForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &ReviewList{Reviews: reviews, Total: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		out.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	return out, nil
}

func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req transport.ReviewRequest) (*models.Review, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, validation("invalid field: productId")
	}
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		return nil, orNotFound(err, "User not found")
	}
	rv := models.Review{
		UserID:    userID,
		ProductID: productID,
		UserName:  user.FullName,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	}
	if err := s.Repo.CreateReview(ctx, &rv); err != nil {
		return nil, orNotFound(err, "Product not found")
	}
	s.Catalog.Touch(ctx, productID)
	return &rv, nil
}
