package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/repository"
)

// (provider, name) sabitleri: refresh token, token store'da bu isim
// altında yaşar. Kullanıcı başına bu çift için EN FAZLA bir canlı token olur.
const (
	loginProvider    = "KonakApi"
	refreshTokenName = "RefreshToken"
)

// RefreshTokenManager, opak refresh token'ların yaşam döngüsünü yönetir.
//
// Rotasyon kuralı: CreateRefreshToken HER çağrıda önce eski token'ı siler,
// sonra yenisini üretip saklar. Yani login veya başarılı refresh sonrası
// önceki refresh token anında geçersizdir.
type RefreshTokenManager interface {
	// CreateRefreshToken, kullanıcı için yeni token üretir, eskisini ezer.
	CreateRefreshToken(ctx context.Context, userID string) (string, error)

	// VerifyRefreshToken, sunulan token'ı saklanan değerle karşılaştırır.
	// Eşleşmezse veya saklanan token yoksa pkg.ErrUnauthorized döner.
	VerifyRefreshToken(ctx context.Context, userID, token string) error

	// RevokeRefreshToken, kullanıcının canlı token'ını siler. Idempotent.
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// refreshTokenManager, RefreshTokenManager implementasyonu.
type refreshTokenManager struct {
	tokenRepo repository.AuthTokenRepository
}

// NewRefreshTokenManager, constructor.
func NewRefreshTokenManager(tokenRepo repository.AuthTokenRepository) RefreshTokenManager {
	return &refreshTokenManager{tokenRepo: tokenRepo}
}

func (m *refreshTokenManager) CreateRefreshToken(ctx context.Context, userID string) (string, error) {
	// Önce sil: üretim yarıda kalsa bile eski token geçerli kalmaz.
	if err := m.tokenRepo.Remove(ctx, userID, loginProvider, refreshTokenName); err != nil {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := m.tokenRepo.Set(ctx, userID, loginProvider, refreshTokenName, token); err != nil {
		return "", err
	}

	return token, nil
}

func (m *refreshTokenManager) VerifyRefreshToken(ctx context.Context, userID, token string) error {
	stored, err := m.tokenRepo.Get(ctx, userID, loginProvider, refreshTokenName)
	if errors.Is(err, pkg.ErrNotFound) {
		return pkg.ErrUnauthorized
	}
	if err != nil {
		return err
	}

	// Sabit zamanlı karşılaştırma — timing side channel'a kapı açma.
	if !hmac.Equal([]byte(stored), []byte(token)) {
		return pkg.ErrUnauthorized
	}

	return nil
}

func (m *refreshTokenManager) RevokeRefreshToken(ctx context.Context, userID string) error {
	return m.tokenRepo.Remove(ctx, userID, loginProvider, refreshTokenName)
}
