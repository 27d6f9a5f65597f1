package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ozank/konak/database"
	"github.com/ozank/konak/pkg"
)

// sqliteAuthTokenRepo, AuthTokenRepository'nin SQLite implementasyonu.
type sqliteAuthTokenRepo struct {
	db database.TxQuerier
}

// NewSQLiteAuthTokenRepo, constructor.
func NewSQLiteAuthTokenRepo(db database.TxQuerier) AuthTokenRepository {
	return &sqliteAuthTokenRepo{db: db}
}

func (r *sqliteAuthTokenRepo) Get(ctx context.Context, userID, provider, name string) (string, error) {
	query := `
		SELECT value FROM auth_tokens
		WHERE user_id = ? AND provider = ? AND name = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, userID, provider, name).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", pkg.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth token: %w", err)
	}

	return value, nil
}

func (r *sqliteAuthTokenRepo) Set(ctx context.Context, userID, provider, name, value string) error {
	// ON CONFLICT DO UPDATE: (user_id, provider, name) PK'i sayesinde
	// ikinci yazış eski değeri ezer — last-write-wins.
	query := `
		INSERT INTO auth_tokens (user_id, provider, name, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, provider, name)
		DO UPDATE SET value = excluded.value, created_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, userID, provider, name, value); err != nil {
		return fmt.Errorf("failed to set auth token: %w", err)
	}
	return nil
}

func (r *sqliteAuthTokenRepo) Remove(ctx context.Context, userID, provider, name string) error {
	query := `DELETE FROM auth_tokens WHERE user_id = ? AND provider = ? AND name = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, provider, name); err != nil {
		return fmt.Errorf("failed to remove auth token: %w", err)
	}
	return nil
}

func (r *sqliteAuthTokenRepo) RemoveAllForUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to remove user's auth tokens: %w", err)
	}
	return nil
}

func (r *sqliteAuthTokenRepo) RemoveStale(ctx context.Context, cutoff time.Time) (int64, error) {
	// created_at kolonu CURRENT_TIMESTAMP ile dolduğu için cutoff aynı
	// formatta (UTC, "YYYY-MM-DD HH:MM:SS") string olarak bind edilir.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE created_at < ?`,
		cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("failed to remove stale auth tokens: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
