package repository

import (
	"context"

	"github.com/ozank/konak/models"
)

// CountryRepository, ülke katalog kayıtları için interface.
type CountryRepository interface {
	GetAll(ctx context.Context) ([]models.Country, error)
	GetByID(ctx context.Context, id int64) (*models.Country, error)

	// GetDetails, ülkeyi otelleriyle birlikte döner (detay endpoint'i).
	GetDetails(ctx context.Context, id int64) (*models.Country, error)

	Create(ctx context.Context, country *models.Country) error
	Update(ctx context.Context, country *models.Country) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
