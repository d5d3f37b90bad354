package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

var ErrNotCancellable = errors.New("consultation can no longer be cancelled")

func (r *GormRepo) ListConsultations(ctx context.Context, userID uuid.UUID, status string) ([]models.DoctorConsultation, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := []models.DoctorConsultation{}
	if err := q.Order("start_time DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) CreateConsultation(ctx context.Context, c *models.DoctorConsultation) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// CancelConsultation flips a scheduled consultation to cancelled. Any other
// status yields ErrNotCancellable.
func (r *GormRepo) CancelConsultation(ctx context.Context, id, userID uuid.UUID) (*models.DoctorConsultation, error) {
	var c models.DoctorConsultation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error; err != nil {
			return err
		}
		if c.Status != models.ConsultationScheduled {
			return ErrNotCancellable
		}
		c.Status = models.ConsultationCancelled
		return tx.Model(&models.DoctorConsultation{}).Where("id = ?", c.ID).
			Update("status", models.ConsultationCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
