package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/pkg/tokens"
)

var ErrRefreshInvalid = errors.New("refresh token expired or revoked")

func (r *GormRepo) SaveRefresh(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

// RotateRefresh revokes the token identified by oldJTI and stores next in one
// transaction. The presented raw token must hash to the stored digest.
func (r *GormRepo) RotateRefresh(ctx context.Context, oldJTI, raw string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.RefreshToken
		if err := forUpdate(tx).Where("jti = ?", oldJTI).First(&cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRefreshInvalid
			}
			return err
		}
		if cur.Revoked || cur.ExpiresAt.Before(time.Now()) || cur.Token != tokens.Sha256Hex(raw) {
			return ErrRefreshInvalid
		}
		if err := tx.Model(&models.RefreshToken{}).Where("id = ?", cur.ID).Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(next).Error
	})
}

func (r *GormRepo) RevokeRefresh(ctx context.Context, raw string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokens.Sha256Hex(raw)).
		Update("revoked", true).Error
}
