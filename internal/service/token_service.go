package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/pkg/logging"
	"github.com/Skotchmaster/medstore/pkg/tokens"
)

type TokenService struct {
	Repo          *repo.GormRepo
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (t *TokenService) ttl() (time.Duration, time.Duration) {
	access, refresh := t.AccessTTL, t.RefreshTTL
	if access <= 0 {
		access = 15 * time.Minute
	}
	if refresh <= 0 {
		refresh = 7 * 24 * time.Hour
	}
	return access, refresh
}

// Issue signs a new pair for subject and stores the refresh digest.
func (t *TokenService) Issue(ctx context.Context, role string, subject uuid.UUID) (*tokens.Pair, error) {
	pair, row, err := t.sign(role, subject)
	if err != nil {
		return nil, err
	}
	if err := t.Repo.SaveRefresh(ctx, row); err != nil {
		return nil, err
	}
	return pair, nil
}

func (t *TokenService) sign(role string, subject uuid.UUID) (*tokens.Pair, *models.RefreshToken, error) {
	accessTTL, refreshTTL := t.ttl()
	now := time.Now()
	pair := &tokens.Pair{AccessExp: now.Add(accessTTL), RefreshExp: now.Add(refreshTTL)}

	var err error
	pair.AccessToken, err = tokens.NewAccessToken(t.AccessSecret, role, subject.String(), pair.AccessExp)
	if err != nil {
		return nil, nil, err
	}
	var jti string
	pair.RefreshToken, jti, err = tokens.NewRefreshToken(t.RefreshSecret, role, subject.String(), pair.RefreshExp)
	if err != nil {
		return nil, nil, err
	}
	return pair, &models.RefreshToken{
		SubjectID: subject,
		Role:      role,
		Token:     tokens.Sha256Hex(pair.RefreshToken),
		JTI:       jti,
		ExpiresAt: pair.RefreshExp,
	}, nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued for the same subject and role.
func (t *TokenService) Refresh(ctx context.Context, raw string) (*tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "token.refresh")

	claims, err := tokens.RefreshClaimsFromToken(raw, t.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "invalid refresh token", "error", err)
		return nil, newErr(ErrUnauthorized, "Invalid refresh token")
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, newErr(ErrUnauthorized, "Invalid refresh token")
	}

	if claims.Role == models.RoleVendor {
		if err := t.vendorActive(ctx, subject); err != nil {
			l.Warn("refresh_failed", "status", 401, "reason", "vendor not active", "vendor_id", subject)
			_ = t.Repo.RevokeRefresh(ctx, raw)
			return nil, err
		}
	}

	pair, row, err := t.sign(claims.Role, subject)
	if err != nil {
		return nil, err
	}
	if err := t.Repo.RotateRefresh(ctx, claims.ID, raw, row); err != nil {
		if errors.Is(err, repo.ErrRefreshInvalid) {
			l.Warn("refresh_failed", "status", 401, "reason", "revoked or expired", "jti", claims.ID)
			return nil, newErr(ErrUnauthorized, "Refresh token expired or revoked")
		}
		return nil, err
	}
	return pair, nil
}

// vendorActive keeps rejected and suspended vendors from renewing a session
// they opened before the status change.
func (t *TokenService) vendorActive(ctx context.Context, id uuid.UUID) error {
	v, err := t.Repo.VendorByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newErr(ErrUnauthorized, "Invalid refresh token")
		}
		return err
	}
	switch v.Status {
	case models.VendorRejected, models.VendorSuspended:
		return newErr(ErrUnauthorized, "Vendor account is not active")
	}
	return nil
}

func (t *TokenService) Revoke(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	return t.Repo.RevokeRefresh(ctx, raw)
}
