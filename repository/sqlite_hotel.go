package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ozank/konak/database"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
)

// sqliteHotelRepo, HotelRepository'nin SQLite implementasyonu.
type sqliteHotelRepo struct {
	db database.TxQuerier
}

// NewSQLiteHotelRepo, constructor.
func NewSQLiteHotelRepo(db database.TxQuerier) HotelRepository {
	return &sqliteHotelRepo{db: db}
}

const hotelColumns = `id, name, address, rating, country_id`

func (r *sqliteHotelRepo) GetAll(ctx context.Context) ([]models.Hotel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotels: %w", err)
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Rating, &h.CountryID); err != nil {
			return nil, fmt.Errorf("failed to scan hotel row: %w", err)
		}
		hotels = append(hotels, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hotel rows: %w", err)
	}

	return hotels, nil
}

func (r *sqliteHotelRepo) GetByID(ctx context.Context, id int64) (*models.Hotel, error) {
	hotel := &models.Hotel{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, id).
		Scan(&hotel.ID, &hotel.Name, &hotel.Address, &hotel.Rating, &hotel.CountryID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	return hotel, nil
}

func (r *sqliteHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO hotels (name, address, rating, country_id) VALUES (?, ?, ?, ?) RETURNING id`,
		hotel.Name, hotel.Address, hotel.Rating, hotel.CountryID,
	).Scan(&hotel.ID)

	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *sqliteHotelRepo) Update(ctx context.Context, hotel *models.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hotels SET name = ?, address = ?, rating = ?, country_id = ? WHERE id = ?`,
		hotel.Name, hotel.Address, hotel.Rating, hotel.CountryID, hotel.ID)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}

func (r *sqliteHotelRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
