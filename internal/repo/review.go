package repo

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

func (r *GormRepo) ReviewsForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	out := []models.Review{}
	if err := r.DB.WithContext(ctx).Where("product_id = ?", productID).
		Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview stores rv and recomputes the product's rating and review
// count from all of its reviews.
func (r *GormRepo) CreateReview(ctx context.Context, rv *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := forUpdate(tx).Where("id = ?", rv.ProductID).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Create(rv).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("product_id = ?", rv.ProductID).
			Scan(&agg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
			"rating":  math.Round(agg.Avg*10) / 10,
			"reviews": agg.Count,
		}).Error
	})
}
