package services

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender, gönderilen reset token'larını yakalayan test EmailSender'ı.
type fakeSender struct {
	sentTo    []string
	lastToken string
}

func (f *fakeSender) SendPasswordReset(_ context.Context, toEmail, token string) error {
	f.sentTo = append(f.sentTo, toEmail)
	f.lastToken = token
	return nil
}

func newResetEnv(t *testing.T) (*testEnv, PasswordResetService, *fakeSender, repository.PasswordResetRepository) {
	t.Helper()

	env := newTestEnv(t)
	sender := &fakeSender{}
	svc := NewPasswordResetService(env.userRepo, env.resetRepo, env.tokenRepo, sender, log.Default())

	return env, svc, sender, env.resetRepo
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	_, svc, sender, _ := newResetEnv(t)

	cooldown, err := svc.ForgotPassword(context.Background(), "nobody@b.com")
	require.NoError(t, err)
	assert.Zero(t, cooldown)
	assert.Empty(t, sender.sentTo, "bilinmeyen email'e email gönderilmemeli")
}

func TestForgotPasswordSendsTokenAndCooldown(t *testing.T) {
	env, svc, sender, _ := newResetEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	cooldown, err := svc.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Zero(t, cooldown)
	require.Equal(t, []string{"a@b.com"}, sender.sentTo)
	assert.NotEmpty(t, sender.lastToken)

	// Hemen ikinci istek cooldown'a takılmalı, email gitmemeli.
	cooldown, err = svc.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Positive(t, cooldown)
	assert.Len(t, sender.sentTo, 1)
}

func TestResetPasswordFullFlow(t *testing.T) {
	env, svc, sender, _ := newResetEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "OldP@ss1")

	login, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "OldP@ss1"})
	require.NoError(t, err)

	_, err = svc.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, sender.lastToken, "NewP@ss1"))

	// Eski şifre artık çalışmaz, yenisi çalışır.
	_, err = env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "OldP@ss1"})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
	_, err = env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "NewP@ss1"})
	assert.NoError(t, err)

	// Reset öncesi oturum düşmüş olmalı — eski refresh çifti ölü.
	_, err = env.auth.RefreshSession(ctx, login)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// Token tek kullanımlık — ikinci reset denemesi reddedilir.
	err = svc.ResetPassword(ctx, sender.lastToken, "AnotherP@ss1")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	_, svc, _, _ := newResetEnv(t)

	err := svc.ResetPassword(context.Background(), "bogus-token", "NewP@ss1")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	env, svc, sender, resetRepo := newResetEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	_, err := svc.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)

	// Kaydı geçmişe çek — süresi dolmuş gibi.
	record, err := resetRepo.GetByTokenHash(ctx, hashResetToken(sender.lastToken))
	require.NoError(t, err)
	require.NoError(t, resetRepo.DeleteByID(ctx, record.ID))
	record.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, resetRepo.Create(ctx, record))

	err = svc.ResetPassword(ctx, sender.lastToken, "NewP@ss1")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}
