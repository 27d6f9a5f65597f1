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

// sqliteCountryRepo, CountryRepository'nin SQLite implementasyonu.
type sqliteCountryRepo struct {
	db database.TxQuerier
}

// NewSQLiteCountryRepo, constructor.
func NewSQLiteCountryRepo(db database.TxQuerier) CountryRepository {
	return &sqliteCountryRepo{db: db}
}

func (r *sqliteCountryRepo) GetAll(ctx context.Context) ([]models.Country, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, short_name FROM countries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get countries: %w", err)
	}
	defer rows.Close()

	var countries []models.Country
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.ShortName); err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}
		countries = append(countries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country rows: %w", err)
	}

	return countries, nil
}

func (r *sqliteCountryRepo) GetByID(ctx context.Context, id int64) (*models.Country, error) {
	country := &models.Country{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, short_name FROM countries WHERE id = ?`, id).
		Scan(&country.ID, &country.Name, &country.ShortName)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}

	return country, nil
}

func (r *sqliteCountryRepo) GetDetails(ctx context.Context, id int64) (*models.Country, error) {
	country, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, address, rating, country_id
		FROM hotels WHERE country_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get country hotels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Rating, &h.CountryID); err != nil {
			return nil, fmt.Errorf("failed to scan hotel row: %w", err)
		}
		country.Hotels = append(country.Hotels, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hotel rows: %w", err)
	}

	return country, nil
}

func (r *sqliteCountryRepo) Create(ctx context.Context, country *models.Country) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO countries (name, short_name) VALUES (?, ?) RETURNING id`,
		country.Name, country.ShortName,
	).Scan(&country.ID)

	if err != nil {
		return fmt.Errorf("failed to create country: %w", err)
	}
	return nil
}

func (r *sqliteCountryRepo) Update(ctx context.Context, country *models.Country) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE countries SET name = ?, short_name = ? WHERE id = ?`,
		country.Name, country.ShortName, country.ID)
	if err != nil {
		return fmt.Errorf("failed to update country: %w", err)
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

func (r *sqliteCountryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
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

func (r *sqliteCountryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM countries WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check country existence: %w", err)
	}
	return count > 0, nil
}
