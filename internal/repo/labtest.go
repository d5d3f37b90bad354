package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

type LabTestFilter struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

func (f LabTestFilter) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		p := like(f.Search)
		q = q.Where("LOWER(test_name) LIKE ? OR LOWER(description) LIKE ?", p, p)
	}
	return q
}

func (r *GormRepo) ListLabTests(ctx context.Context, f LabTestFilter) (int64, []models.LabTest, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.LabTest{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}
	out := []models.LabTest{}
	if err := f.apply(r.DB.WithContext(ctx)).Order("test_name ASC").
		Offset(f.Offset).Limit(f.Limit).Find(&out).Error; err != nil {
		return 0, nil, err
	}
	return total, out, nil
}

func (r *GormRepo) GetLabTest(ctx context.Context, id uuid.UUID) (*models.LabTest, error) {
	var t models.LabTest
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepo) CreateLabTest(ctx context.Context, t *models.LabTest) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) CreateLabTestBooking(ctx context.Context, b *models.LabTestBooking) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) ListLabTestBookings(ctx context.Context, userID uuid.UUID) ([]models.LabTestBooking, error) {
	out := []models.LabTestBooking{}
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("collection_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
