package services

import (
	"context"
	"fmt"

	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/repository"
)

// HotelService, otel katalog operasyonları.
type HotelService interface {
	GetHotels(ctx context.Context) ([]models.Hotel, error)
	GetHotel(ctx context.Context, id int64) (*models.Hotel, error)
	CreateHotel(ctx context.Context, req *models.CreateHotelRequest) (*models.Hotel, error)
	UpdateHotel(ctx context.Context, id int64, req *models.UpdateHotelRequest) error
	DeleteHotel(ctx context.Context, id int64) error
}

// hotelService, HotelService implementasyonu.
type hotelService struct {
	hotelRepo   repository.HotelRepository
	countryRepo repository.CountryRepository
}

// NewHotelService, constructor.
func NewHotelService(hotelRepo repository.HotelRepository, countryRepo repository.CountryRepository) HotelService {
	return &hotelService{hotelRepo: hotelRepo, countryRepo: countryRepo}
}

func (s *hotelService) GetHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.hotelRepo.GetAll(ctx)
}

func (s *hotelService) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	return s.hotelRepo.GetByID(ctx, id)
}

func (s *hotelService) CreateHotel(ctx context.Context, req *models.CreateHotelRequest) (*models.Hotel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// FK hatasını beklemek yerine ülkeyi önden kontrol et — daha iyi mesaj.
	exists, err := s.countryRepo.Exists(ctx, req.CountryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: country %d does not exist", pkg.ErrBadRequest, req.CountryID)
	}

	hotel := &models.Hotel{
		Name:      req.Name,
		Address:   req.Address,
		Rating:    req.Rating,
		CountryID: req.CountryID,
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, err
	}

	return hotel, nil
}

func (s *hotelService) UpdateHotel(ctx context.Context, id int64, req *models.UpdateHotelRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if req.ID != id {
		return fmt.Errorf("%w: id mismatch between URL and body", pkg.ErrBadRequest)
	}

	exists, err := s.countryRepo.Exists(ctx, req.CountryID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: country %d does not exist", pkg.ErrBadRequest, req.CountryID)
	}

	hotel := &models.Hotel{
		ID:        id,
		Name:      req.Name,
		Address:   req.Address,
		Rating:    req.Rating,
		CountryID: req.CountryID,
	}

	return s.hotelRepo.Update(ctx, hotel)
}

func (s *hotelService) DeleteHotel(ctx context.Context, id int64) error {
	return s.hotelRepo.Delete(ctx, id)
}
