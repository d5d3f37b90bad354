package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
)

func (r *GormRepo) CreateVendorIfNotExists(ctx context.Context, v *models.Vendor) error {
	v.Email = strings.ToLower(strings.TrimSpace(v.Email))
	tx := r.DB.WithContext(ctx).Where("email = ?", v.Email).FirstOrCreate(v)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *GormRepo) VendorByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) VendorByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var v models.Vendor
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormRepo) VendorsByStatus(ctx context.Context, status string) ([]models.Vendor, error) {
	vendors := []models.Vendor{}
	if err := r.DB.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// TransitionVendor locks the vendor row and asks next for the target status.
// A returned status equal to the current one leaves the row untouched.
func (r *GormRepo) TransitionVendor(ctx context.Context, id uuid.UUID, reason string, next func(from string) (string, error)) (*models.Vendor, error) {
	var v models.Vendor
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", id).First(&v).Error; err != nil {
			return err
		}
		to, err := next(v.Status)
		if err != nil {
			return err
		}
		if to == v.Status {
			return nil
		}

		updates := map[string]any{"status": to}
		switch to {
		case models.VendorVerified:
			now := time.Now().UTC()
			updates["verified_at"] = &now
			updates["is_active"] = true
			updates["rejection_reason"] = ""
		case models.VendorRejected:
			updates["rejection_reason"] = reason
			updates["is_active"] = false
		case models.VendorSuspended:
			updates["is_active"] = false
		}
		if err := tx.Model(&v).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&v).Error
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}
