package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ozank/konak/database"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
)

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
type sqliteUserRepo struct {
	db database.TxQuerier
}

// NewSQLiteUserRepo, constructor.
func NewSQLiteUserRepo(db database.TxQuerier) UserRepository {
	return &sqliteUserRepo{db: db}
}

const userColumns = `id, email, username, first_name, last_name, password_hash, security_stamp, created_at`

func (r *sqliteUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	user.SecurityStamp = uuid.NewString()

	query := `
		INSERT INTO users (id, email, username, first_name, last_name, password_hash, security_stamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Username,
		user.FirstName, user.LastName,
		user.PasswordHash, user.SecurityStamp,
	).Scan(&user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return pkg.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *sqliteUserRepo) CreateInRole(ctx context.Context, user *models.User, roleName string) error {
	// Kullanıcı + rol ataması tek transaction'da. TxQuerier *sql.DB değilse
	// (zaten bir tx içindeyiz demektir) iç içe tx açılmaz, düz sırayla çalışır.
	conn, ok := r.db.(*sql.DB)
	if !ok {
		if err := r.Create(ctx, user); err != nil {
			return err
		}
		return r.AddToRole(ctx, user.ID, roleName)
	}

	return database.WithTx(ctx, conn, func(tx *sql.Tx) error {
		txRepo := &sqliteUserRepo{db: tx}
		if err := txRepo.Create(ctx, user); err != nil {
			return err
		}
		return txRepo.AddToRole(ctx, user.ID, roleName)
	})
}

func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *sqliteUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *sqliteUserRepo) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Username,
		&user.FirstName, &user.LastName,
		&user.PasswordHash, &user.SecurityStamp, &user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *sqliteUserRepo) UpdatePassword(ctx context.Context, userID, newPasswordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, newPasswordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *sqliteUserRepo) UpdateSecurityStamp(ctx context.Context, userID, stamp string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET security_stamp = ? WHERE id = ?`, stamp, userID)
	if err != nil {
		return fmt.Errorf("failed to update security stamp: %w", err)
	}
	return nil
}

func (r *sqliteUserRepo) AddToRole(ctx context.Context, userID, roleName string) error {
	var roleID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM roles WHERE name = ?`, roleName).Scan(&roleID)
	if errors.Is(err, sql.ErrNoRows) {
		return pkg.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up role: %w", err)
	}

	// Aynı rol iki kez atanırsa sessizce yoksay — INSERT OR IGNORE.
	_, err = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

func (r *sqliteUserRepo) GetRoles(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT r.name
		FROM roles r
		INNER JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = ?
		ORDER BY r.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}

	return roles, nil
}

func (r *sqliteUserRepo) GetClaims(ctx context.Context, userID string) ([]models.UserClaim, error) {
	query := `
		SELECT claim_type, claim_value
		FROM user_claims
		WHERE user_id = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user claims: %w", err)
	}
	defer rows.Close()

	var claims []models.UserClaim
	for rows.Next() {
		var c models.UserClaim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("failed to scan claim row: %w", err)
		}
		claims = append(claims, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claim rows: %w", err)
	}

	return claims, nil
}

func (r *sqliteUserRepo) Delete(ctx context.Context, id string) error {
	// FK cascade ile user_roles, user_claims, auth_tokens vb. de silinir.
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// isUniqueViolation, SQLite UNIQUE constraint hatasını tanır.
// modernc.org/sqlite hata mesajında "UNIQUE constraint failed" taşır.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
