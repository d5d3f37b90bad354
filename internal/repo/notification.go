package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

const NotificationPageSize = 50

// ListNotifications returns the newest notifications, optionally filtered by
// read state, plus the user's unread count.
func (r *GormRepo) ListNotifications(ctx context.Context, userID uuid.UUID, isRead *bool) ([]models.Notification, int64, error) {
	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if isRead != nil {
		q = q.Where("is_read = ?", *isRead)
	}
	out := []models.Notification{}
	if err := q.Order("created_at DESC").Limit(NotificationPageSize).Find(&out).Error; err != nil {
		return nil, 0, err
	}

	var unread int64
	if err := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return nil, 0, err
	}
	return out, unread, nil
}

func (r *GormRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *GormRepo) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) (*models.Notification, error) {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var n models.Notification
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}
