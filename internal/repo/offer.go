package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

func (r *GormRepo) ActiveOffers(ctx context.Context, now time.Time) ([]models.Offer, error) {
	offers := []models.Offer{}
	if err := r.DB.WithContext(ctx).
		Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Order("discount_value DESC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *GormRepo) CreateOffer(ctx context.Context, o *models.Offer) error {
	o.Code = strings.ToUpper(strings.TrimSpace(o.Code))
	tx := r.DB.WithContext(ctx).Where("code = ?", o.Code).FirstOrCreate(o)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) OfferByCode(ctx context.Context, code string) (*models.Offer, error) {
	var o models.Offer
	if err := r.DB.WithContext(ctx).Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// redeemOffer bumps used_count only while the limit still allows it, so two
// concurrent checkouts cannot both take the last use.
func redeemOffer(tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := tx.Model(&models.Offer{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", id).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormRepo) RedeemOffer(ctx context.Context, id uuid.UUID) (bool, error) {
	return redeemOffer(r.DB.WithContext(ctx), id)
}
