package repository

import (
	"context"

	"github.com/ozank/konak/models"
)

// PasswordResetRepository, şifre sıfırlama token'ları için interface.
// Token'lar hash'lenmiş saklanır; DB sızsa bile ham token ele geçmez.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// GetByTokenHash, hash ile token kaydını döner. Yoksa pkg.ErrNotFound.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)

	// GetLatestByUserID, kullanıcının en son oluşturulan token'ını döner
	// (cooldown kontrolü için). Yoksa pkg.ErrNotFound.
	GetLatestByUserID(ctx context.Context, userID string) (*models.PasswordResetToken, error)

	DeleteByID(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
