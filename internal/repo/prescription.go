package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

func (r *GormRepo) ListPrescriptions(ctx context.Context, userID uuid.UUID, status string) ([]models.Prescription, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := []models.Prescription{}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) DeletePrescription(ctx context.Context, id, userID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Prescription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
