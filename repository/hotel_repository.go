package repository

import (
	"context"

	"github.com/ozank/konak/models"
)

// HotelRepository, otel katalog kayıtları için interface.
type HotelRepository interface {
	GetAll(ctx context.Context) ([]models.Hotel, error)
	GetByID(ctx context.Context, id int64) (*models.Hotel, error)
	Create(ctx context.Context, hotel *models.Hotel) error
	Update(ctx context.Context, hotel *models.Hotel) error
	Delete(ctx context.Context, id int64) error
}
