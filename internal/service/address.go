package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/medstore/internal/models"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/transport"
)

type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req transport.AddressRequest) (*models.Address, error) {
	a := models.Address{
		UserID:       userID,
		Type:         req.Type,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
	if a.Type == "" {
		a.Type = "home"
	}
	if a.Country == "" {
		a.Country = "India"
	}
	if err := s.Repo.CreateAddress(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return orNotFound(s.Repo.DeleteAddress(ctx, id, userID), "Address not found")
}
