package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
	pkg_hash "github.com/Skotchmaster/medstore/pkg/hash"
	"github.com/Skotchmaster/medstore/pkg/logging"
	"github.com/Skotchmaster/medstore/pkg/tokens"
)

const msgBadCredentials = "Invalid email or password"

type AuthService struct {
	Repo       *repo.GormRepo
	Tokens     *TokenService
	BcryptCost int
	Events     events.Publisher
}

type LoginResult struct {
	User   *models.User
	Vendor *models.Vendor
	Tokens *tokens.Pair
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if _, err := s.Repo.UserByEmail(ctx, req.Email); err == nil {
		l.Warn("register_error", "status", 409, "reason", "email already registered")
		return nil, conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	pwHash, err := pkg_hash.HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}
	user := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("register_error", "status", 409, "reason", "email already registered")
			return nil, conflict("Email already registered")
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}
	l.Info("user_registered", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.UserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, newErr(ErrUnauthorized, msgBadCredentials)
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, newErr(ErrUnauthorized, msgBadCredentials)
	}

	pair, err := s.Tokens.Issue(ctx, user.Role, user.ID)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue tokens", "error", err)
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.Repo.UserByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "User not found")
	}
	return u, nil
}

func (s *AuthService) VendorRegister(ctx context.Context, req transport.VendorRegisterRequest) (*models.Vendor, error) {
	l := logging.FromContext(ctx).With("svc", "auth.vendor_register")

	if _, err := s.Repo.VendorByEmail(ctx, req.Email); err == nil {
		l.Warn("vendor_register_error", "status", 409, "reason", "email already registered")
		return nil, conflict("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	pwHash, err := pkg_hash.HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	v := models.Vendor{
		VendorName:           strings.TrimSpace(req.VendorName),
		Email:                req.Email,
		PasswordHash:         pwHash,
		Phone:                req.Phone,
		BusinessType:         req.BusinessType,
		Description:          req.Description,
		Logo:                 req.Logo,
		RegistrationNumber:   req.RegistrationNumber,
		LicenseNumber:        req.LicenseNumber,
		GSTNumber:            req.GSTNumber,
		Status:               models.VendorPending,
		CommissionPercentage: 10,
	}
	if req.BusinessAddress != nil {
		v.Address = *req.BusinessAddress
	}
	if err := s.Repo.CreateVendorIfNotExists(ctx, &v); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("vendor_register_error", "status", 409, "reason", "email already registered")
			return nil, conflict("Email already registered")
		}
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicVendors, events.New("vendor_registered", v.ID.String(), map[string]any{
		"vendorName": v.VendorName, "businessType": v.BusinessType,
	}))
	l.Info("vendor_registered", "vendor_id", v.ID)
	return &v, nil
}

// VendorLogin authenticates a vendor. Rejected and suspended accounts are
// refused even with the right password.
func (s *AuthService) VendorLogin(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.vendor_login")

	v, err := s.Repo.VendorByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newErr(ErrUnauthorized, msgBadCredentials)
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(v.PasswordHash, req.Password) {
		l.Warn("vendor_login_failed", "status", 401, "reason", "wrong password")
		return nil, newErr(ErrUnauthorized, msgBadCredentials)
	}
	switch v.Status {
	case models.VendorRejected:
		return nil, forbidden("Your vendor account was rejected. Contact support.")
	case models.VendorSuspended:
		return nil, forbidden("Your vendor account is suspended")
	}

	pair, err := s.Tokens.Issue(ctx, models.RoleVendor, v.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Vendor: v, Tokens: pair}, nil
}

// CreateAdmin creates an admin account or promotes and re-passwords an
// existing one with the same email.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	if len(password) < 6 {
		return nil, validation("password must be at least 6 characters long")
	}
	pwHash, err := pkg_hash.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := models.User{
		FullName:     name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
		IsVerified:   true,
	}
	if err := s.Repo.SaveUser(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) VendorMe(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	v, err := s.Repo.VendorByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "Vendor not found")
	}
	return v, nil
}
