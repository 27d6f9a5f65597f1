package services

import (
	"context"
	"fmt"

	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/repository"
)

// CountryService, ülke katalog operasyonları.
type CountryService interface {
	GetCountries(ctx context.Context) ([]models.Country, error)

	// GetCountry, ülkeyi otelleriyle birlikte döner.
	GetCountry(ctx context.Context, id int64) (*models.Country, error)

	CreateCountry(ctx context.Context, req *models.CreateCountryRequest) (*models.Country, error)
	UpdateCountry(ctx context.Context, id int64, req *models.UpdateCountryRequest) error
	DeleteCountry(ctx context.Context, id int64) error
}

// countryService, CountryService implementasyonu.
type countryService struct {
	countryRepo repository.CountryRepository
}

// NewCountryService, constructor.
func NewCountryService(countryRepo repository.CountryRepository) CountryService {
	return &countryService{countryRepo: countryRepo}
}

func (s *countryService) GetCountries(ctx context.Context) ([]models.Country, error) {
	return s.countryRepo.GetAll(ctx)
}

func (s *countryService) GetCountry(ctx context.Context, id int64) (*models.Country, error) {
	return s.countryRepo.GetDetails(ctx, id)
}

func (s *countryService) CreateCountry(ctx context.Context, req *models.CreateCountryRequest) (*models.Country, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	country := &models.Country{
		Name:      req.Name,
		ShortName: req.ShortName,
	}

	if err := s.countryRepo.Create(ctx, country); err != nil {
		return nil, err
	}

	return country, nil
}

func (s *countryService) UpdateCountry(ctx context.Context, id int64, req *models.UpdateCountryRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Body'deki id ile URL'deki id tutarlı olmalı.
	if req.ID != id {
		return fmt.Errorf("%w: id mismatch between URL and body", pkg.ErrBadRequest)
	}

	country := &models.Country{
		ID:        id,
		Name:      req.Name,
		ShortName: req.ShortName,
	}

	return s.countryRepo.Update(ctx, country)
}

func (s *countryService) DeleteCountry(ctx context.Context, id int64) error {
	return s.countryRepo.Delete(ctx, id)
}
