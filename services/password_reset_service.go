package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/pkg/email"
	"github.com/ozank/konak/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	// resetTokenTTL, email'deki linkin geçerlilik süresi.
	resetTokenTTL = 15 * time.Minute

	// resetCooldown, aynı hesaba art arda reset emaili istenmesini sınırlar.
	resetCooldown = 90 * time.Second
)

// PasswordResetService, "şifremi unuttum" akışını yönetir.
//
// Güvenlik kuralları:
//   - Email DB'de yoksa ForgotPassword YİNE başarı döner — hesap varlığı
//     response'tan okunamaz (enumeration koruması).
//   - Token DB'de SHA256 hash'i ile saklanır, plaintext sadece email'de yaşar.
//   - Başarılı reset TÜM oturumları düşürür: security stamp döner,
//     refresh token'lar silinir.
type PasswordResetService interface {
	// ForgotPassword, reset emaili gönderir. Cooldown aktifse kalan saniye
	// döner (0 = email gönderildi veya hesap yok).
	ForgotPassword(ctx context.Context, emailAddr string) (int, error)

	// ResetPassword, email'deki token ile yeni şifre belirler.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// passwordResetService, PasswordResetService implementasyonu.
type passwordResetService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	tokenRepo repository.AuthTokenRepository
	sender    email.EmailSender
	logger    *log.Logger
}

// NewPasswordResetService, constructor.
func NewPasswordResetService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	tokenRepo repository.AuthTokenRepository,
	sender email.EmailSender,
	logger *log.Logger,
) PasswordResetService {
	return &passwordResetService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		tokenRepo: tokenRepo,
		sender:    sender,
		logger:    logger,
	}
}

func (s *passwordResetService) ForgotPassword(ctx context.Context, emailAddr string) (int, error) {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Hesap yok — sessizce başarı. Response'tan ayırt edilemez.
			return 0, nil
		}
		return 0, err
	}

	// Cooldown: son token çok yeniyse yenisini üretme.
	if last, err := s.resetRepo.GetLatestByUserID(ctx, user.ID); err == nil {
		elapsed := time.Since(last.CreatedAt)
		if elapsed < resetCooldown {
			return int((resetCooldown - elapsed).Seconds()) + 1, nil
		}
	} else if !errors.Is(err, pkg.ErrNotFound) {
		return 0, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return 0, fmt.Errorf("failed to generate reset token: %w", err)
	}
	plaintext := hex.EncodeToString(raw)

	// Eski token'lar düşer — kullanıcı başına tek aktif reset linki.
	if err := s.resetRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return 0, err
	}

	record := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(plaintext),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, record); err != nil {
		return 0, err
	}

	if err := s.sender.SendPasswordReset(ctx, user.Email, plaintext); err != nil {
		return 0, err
	}

	s.logger.Printf("[auth] password reset email sent to user %s", user.ID)
	return 0, nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	record, err := s.resetRepo.GetByTokenHash(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		if delErr := s.resetRepo.DeleteByID(ctx, record.ID); delErr != nil {
			return delErr
		}
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, record.UserID, string(hash)); err != nil {
		return err
	}

	// Tüm oturumları düşür: stamp döner, refresh token'lar silinir.
	if err := s.userRepo.UpdateSecurityStamp(ctx, record.UserID, uuid.NewString()); err != nil {
		return err
	}
	if err := s.tokenRepo.RemoveAllForUser(ctx, record.UserID); err != nil {
		return err
	}

	if err := s.resetRepo.DeleteByUserID(ctx, record.UserID); err != nil {
		return err
	}

	s.logger.Printf("[auth] password reset completed for user %s", record.UserID)
	return nil
}

// hashResetToken, plaintext token'ın DB'de saklanan SHA256 hex hash'ini üretir.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
