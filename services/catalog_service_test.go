package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/ozank/konak/database"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogEnv(t *testing.T) (CountryService, HotelService) {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	countryRepo := repository.NewSQLiteCountryRepo(db.Conn)
	hotelRepo := repository.NewSQLiteHotelRepo(db.Conn)

	return NewCountryService(countryRepo), NewHotelService(hotelRepo, countryRepo)
}

func TestSeedDataPresent(t *testing.T) {
	countries, hotels := newCatalogEnv(t)
	ctx := context.Background()

	list, err := countries.GetCountries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "United States", list[0].Name)

	all, err := hotels.GetHotels(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetCountryIncludesHotels(t *testing.T) {
	countries, _ := newCatalogEnv(t)

	// Seed: Bahamas (id=3) altında Sandals Resort and Spa var.
	country, err := countries.GetCountry(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "BS", country.ShortName)
	require.Len(t, country.Hotels, 1)
	assert.Equal(t, "Sandals Resort and Spa", country.Hotels[0].Name)
}

func TestCountryCRUD(t *testing.T) {
	countries, _ := newCatalogEnv(t)
	ctx := context.Background()

	created, err := countries.CreateCountry(ctx, &models.CreateCountryRequest{
		Name: "Türkiye", ShortName: "TR",
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	err = countries.UpdateCountry(ctx, created.ID, &models.UpdateCountryRequest{
		ID: created.ID, Name: "Türkiye Cumhuriyeti", ShortName: "TR",
	})
	require.NoError(t, err)

	got, err := countries.GetCountry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Türkiye Cumhuriyeti", got.Name)

	require.NoError(t, countries.DeleteCountry(ctx, created.ID))

	_, err = countries.GetCountry(ctx, created.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestUpdateCountryIDMismatch(t *testing.T) {
	countries, _ := newCatalogEnv(t)

	err := countries.UpdateCountry(context.Background(), 1, &models.UpdateCountryRequest{
		ID: 2, Name: "X", ShortName: "XX",
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestCreateHotelRequiresExistingCountry(t *testing.T) {
	_, hotels := newCatalogEnv(t)
	ctx := context.Background()

	_, err := hotels.CreateHotel(ctx, &models.CreateHotelRequest{
		Name: "Ghost Hotel", Address: "Nowhere", Rating: 4.0, CountryID: 999,
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	created, err := hotels.CreateHotel(ctx, &models.CreateHotelRequest{
		Name: "Pera Palace", Address: "Istanbul", Rating: 4.8, CountryID: 2,
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
}

func TestHotelValidation(t *testing.T) {
	_, hotels := newCatalogEnv(t)

	_, err := hotels.CreateHotel(context.Background(), &models.CreateHotelRequest{
		Name: "Bad Rating", Address: "Somewhere", Rating: 9.9, CountryID: 1,
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestDeleteCountryCascadesHotels(t *testing.T) {
	countries, hotels := newCatalogEnv(t)
	ctx := context.Background()

	// Bahamas'ı sil — altındaki Sandals da FK cascade ile gitmeli.
	require.NoError(t, countries.DeleteCountry(ctx, 3))

	all, err := hotels.GetHotels(ctx)
	require.NoError(t, err)
	for _, h := range all {
		assert.NotEqual(t, int64(3), h.CountryID)
	}
}
