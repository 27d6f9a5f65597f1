package services

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ozank/konak/config"
	"github.com/ozank/konak/database"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv, auth testleri için gerçek (temp dosyalı) SQLite üzerinde
// kurulmuş service + repo seti.
type testEnv struct {
	auth       AuthService
	issuer     TokenIssuer
	refreshMgr RefreshTokenManager
	userRepo   repository.UserRepository
	tokenRepo  repository.AuthTokenRepository
	resetRepo  repository.PasswordResetRepository
	jwtCfg     config.JWTConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	jwtCfg := config.JWTConfig{
		Issuer:            "KonakApi",
		Audience:          "KonakApiClient",
		Key:               "test-secret-key-that-is-long-enough",
		DurationInMinutes: 10,
	}

	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	tokenRepo := repository.NewSQLiteAuthTokenRepo(db.Conn)
	resetRepo := repository.NewSQLiteResetTokenRepo(db.Conn)
	issuer := NewTokenIssuer(userRepo, jwtCfg)
	refreshMgr := NewRefreshTokenManager(tokenRepo)
	auth := NewAuthService(userRepo, tokenRepo, issuer, refreshMgr, jwtCfg, log.Default())

	return &testEnv{
		auth:       auth,
		issuer:     issuer,
		refreshMgr: refreshMgr,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		resetRepo:  resetRepo,
		jwtCfg:     jwtCfg,
	}
}

func registerUser(t *testing.T, env *testEnv, email, password string) {
	t.Helper()

	fieldErrors, err := env.auth.Register(context.Background(), &models.CreateUserRequest{
		Email:     email,
		Password:  password,
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	require.Empty(t, fieldErrors)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.UserID)

	// Token tam doğrulamadan geçmeli ve claim'ler dolu olmalı.
	claims, err := env.auth.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, resp.UserID, claims.UID)
	assert.True(t, claims.HasRole("User"), "register sonrası varsayılan rol atanmalı")
}

func TestRegisterValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	fieldErrors, err := env.auth.Register(context.Background(), &models.CreateUserRequest{
		Email:    "not-an-email",
		Password: "123",
	})
	require.NoError(t, err)

	codes := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		codes = append(codes, fe.Code)
	}
	assert.Contains(t, codes, "InvalidEmail")
	assert.Contains(t, codes, "PasswordTooShort")
	assert.Contains(t, codes, "FirstNameRequired")
	assert.Contains(t, codes, "LastNameRequired")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	fieldErrors, err := env.auth.Register(context.Background(), &models.CreateUserRequest{
		Email:     "a@b.com",
		Password:  "different",
		FirstName: "Other",
		LastName:  "Person",
	})
	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "DuplicateEmail", fieldErrors[0].Code)
}

// Yanlış şifre ile bilinmeyen email aynı hatayı üretmeli — response'tan
// hesap varlığı okunamamalı.
func TestLoginFailuresIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	_, err1 := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "wrong"})
	_, err2 := env.auth.Login(ctx, &models.LoginRequest{Email: "nobody@b.com", Password: "P@ssw0rd1"})

	assert.ErrorIs(t, err1, pkg.ErrUnauthorized)
	assert.ErrorIs(t, err2, pkg.ErrUnauthorized)
	assert.Equal(t, err1.Error(), err2.Error())
}

func TestRefreshSessionRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	first, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	// İlk refresh başarılı — yeni çift döner.
	second, err := env.auth.RefreshSession(ctx, first)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken, "refresh token rotasyona uğramalı")
	assert.Equal(t, first.UserID, second.UserID)

	// Aynı (eski) çiftle ikinci deneme reddedilmeli — token tek kullanımlık.
	_, err = env.auth.RefreshSession(ctx, first)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// Eski çift başarısız olunca TÜM token'lar silinir: yeni çift de artık ölü.
	_, err = env.auth.RefreshSession(ctx, second)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestRefreshSessionStaleTokenInvalidatesAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	userBefore, err := env.userRepo.GetByID(ctx, resp.UserID)
	require.NoError(t, err)

	// Sahte refresh token — verify başarısız olmalı.
	forged := *resp
	forged.RefreshToken = "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"

	_, err = env.auth.RefreshSession(ctx, &forged)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// Security stamp dönmeli.
	userAfter, err := env.userRepo.GetByID(ctx, resp.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, userBefore.SecurityStamp, userAfter.SecurityStamp)

	// Gerçek token da silinmiş olmalı — meşru çift artık çalışmaz.
	_, err = env.auth.RefreshSession(ctx, resp)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestRefreshSessionUserIDMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	tampered := *resp
	tampered.UserID = "someone-else"

	_, err = env.auth.RefreshSession(ctx, &tampered)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// ID uyuşmazlığı invalidation TETİKLEMEZ — meşru çift hâlâ çalışır.
	_, err = env.auth.RefreshSession(ctx, resp)
	assert.NoError(t, err)
}

func TestRefreshSessionMalformedAccessToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.RefreshSession(ctx, &models.AuthResponse{
		AccessToken:  "not-a-jwt",
		UserID:       "x",
		RefreshToken: "y",
	})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

// Süresi dolmuş access token refresh için YİNE kullanılabilir olmalı —
// refresh akışı imza ve exp doğrulamaz, kimlik iddiasını okur.
func TestRefreshSessionAcceptsExpiredAccessToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	// Süresi geçmiş ama aynı kimliği taşıyan bir token üret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@b.com",
		"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	expiredString, err := expired.SignedString([]byte(env.jwtCfg.Key))
	require.NoError(t, err)

	renewed, err := env.auth.RefreshSession(ctx, &models.AuthResponse{
		AccessToken:  expiredString,
		UserID:       resp.UserID,
		RefreshToken: resp.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
}

// Kimlik iddiası email claim'inden okunur — sub taşımayan bir token'la
// da refresh çalışmalı.
func TestRefreshSessionReadsEmailClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	emailOnly := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@b.com",
	})
	emailOnlyString, err := emailOnly.SignedString([]byte(env.jwtCfg.Key))
	require.NoError(t, err)

	renewed, err := env.auth.RefreshSession(ctx, &models.AuthResponse{
		AccessToken:  emailOnlyString,
		UserID:       resp.UserID,
		RefreshToken: resp.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
}

func TestValidateAccessTokenRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	// Farklı anahtarla imzalanmış token reddedilmeli.
	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@b.com",
		"iss": env.jwtCfg.Issuer,
		"aud": env.jwtCfg.Audience,
	})
	forged, err := otherKey.SignedString([]byte("wrong-key"))
	require.NoError(t, err)

	_, err = env.auth.ValidateAccessToken(forged)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// "none" benzeri saldırılar: bozuk string de aynı hata.
	_, err = env.auth.ValidateAccessToken("garbage")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// Meşru token geçmeli.
	_, err = env.auth.ValidateAccessToken(resp.AccessToken)
	assert.NoError(t, err)
}

func TestAccessTokensCarryDistinctJTIAndExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	first, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	// exp saniye hassasiyetindedir — 1 saniyeden uzun aralıkla üretilen
	// iki token'ın exp'i de farklı olmalı.
	time.Sleep(1100 * time.Millisecond)

	second, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	c1, err := env.auth.ValidateAccessToken(first.AccessToken)
	require.NoError(t, err)
	c2, err := env.auth.ValidateAccessToken(second.AccessToken)
	require.NoError(t, err)

	assert.NotEmpty(t, c1.ID)
	assert.NotEqual(t, c1.ID, c2.ID)
	assert.NotEqual(t, c1.ExpiresAt.Unix(), c2.ExpiresAt.Unix())
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registerUser(t, env, "a@b.com", "P@ssw0rd1")

	resp, err := env.auth.Login(ctx, &models.LoginRequest{Email: "a@b.com", Password: "P@ssw0rd1"})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, resp.UserID))

	_, err = env.auth.RefreshSession(ctx, resp)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	// Logout idempotent — ikinci çağrı da hatasız.
	assert.NoError(t, env.auth.Logout(ctx, resp.UserID))
}
