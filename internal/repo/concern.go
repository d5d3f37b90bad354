package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

func (r *GormRepo) ListHealthConcerns(ctx context.Context, search string, offset, limit int) (int64, []models.HealthConcern, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if search != "" {
			p := like(search)
			q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", p, p)
		}
		return q
	}

	var total int64
	if err := scope(r.DB.WithContext(ctx).Model(&models.HealthConcern{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	out := []models.HealthConcern{}
	if err := scope(r.DB.WithContext(ctx)).Order("name ASC").
		Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return 0, nil, err
	}
	return total, out, nil
}

func (r *GormRepo) HealthConcernBySlug(ctx context.Context, slug string) (*models.HealthConcern, error) {
	var hc models.HealthConcern
	if err := r.DB.WithContext(ctx).Where("slug = ?", strings.ToLower(slug)).First(&hc).Error; err != nil {
		return nil, err
	}
	return &hc, nil
}

func (r *GormRepo) CreateHealthConcern(ctx context.Context, hc *models.HealthConcern) error {
	err := r.DB.WithContext(ctx).Create(hc).Error
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}
