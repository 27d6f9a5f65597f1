package handlers_test

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ozank/konak/config"
	"github.com/ozank/konak/database"
	"github.com/ozank/konak/handlers"
	"github.com/ozank/konak/middleware"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg/ratelimit"
	"github.com/ozank/konak/repository"
	"github.com/ozank/konak/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer, main.go'daki wire-up'ın test kopyasını kurar ve
// httptest.Server döner. Rate limiter parametrik — 429 testi düşük
// limitle, diğerleri yüksek limitle çalışır.
func newTestServer(t *testing.T, maxLoginAttempts int) (*httptest.Server, repository.UserRepository) {
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
	countryRepo := repository.NewSQLiteCountryRepo(db.Conn)

	issuer := services.NewTokenIssuer(userRepo, jwtCfg)
	refreshMgr := services.NewRefreshTokenManager(tokenRepo)
	authService := services.NewAuthService(userRepo, tokenRepo, issuer, refreshMgr, jwtCfg, log.Default())
	countryService := services.NewCountryService(countryRepo)

	limiter := ratelimit.NewLoginRateLimiter(maxLoginAttempts, time.Minute)
	t.Cleanup(limiter.Close)

	accountHandler := handlers.NewAccountHandler(authService, nil, limiter)
	countryHandler := handlers.NewCountryHandler(countryService)

	authMW := middleware.NewAuthMiddleware(authService, userRepo)
	roleMW := middleware.NewRoleMiddleware(userRepo)
	adminOnly := roleMW.Require("Administrator")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/account/register", accountHandler.Register)
	mux.HandleFunc("POST /api/account/login", accountHandler.Login)
	mux.HandleFunc("POST /api/account/refreshtoken", accountHandler.RefreshToken)
	mux.Handle("GET /api/account/me", authMW.Require(http.HandlerFunc(accountHandler.Me)))
	mux.Handle("DELETE /api/countries/{id}", authMW.Require(
		adminOnly(http.HandlerFunc(countryHandler.Delete))))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, userRepo
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerAndLogin(t *testing.T, srv *httptest.Server, email, password string) models.AuthResponse {
	t.Helper()

	resp := postJSON(t, srv.URL+"/api/account/register", models.CreateUserRequest{
		Email: email, Password: password, FirstName: "Test", LastName: "User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/account/login", models.LoginRequest{
		Email: email, Password: password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data models.AuthResponse `json:"data"`
	}
	decodeBody(t, resp, &envelope)
	return envelope.Data
}

func TestRegisterLoginMeOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	tokens := registerAndLogin(t, srv, "a@b.com", "P@ssw0rd1")
	require.NotEmpty(t, tokens.AccessToken)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/account/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data models.User `json:"data"`
	}
	decodeBody(t, resp, &envelope)
	assert.Equal(t, "a@b.com", envelope.Data.Email)
}

func TestMeRequiresToken(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	resp, err := http.Get(srv.URL + "/api/account/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterReturnsFieldErrors(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	resp := postJSON(t, srv.URL+"/api/account/register", models.CreateUserRequest{
		Email: "bad", Password: "1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Success bool                `json:"success"`
		Errors  []models.FieldError `json:"errors"`
	}
	decodeBody(t, resp, &envelope)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Errors)
}

func TestRefreshTokenOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, 100)

	tokens := registerAndLogin(t, srv, "a@b.com", "P@ssw0rd1")

	resp := postJSON(t, srv.URL+"/api/account/refreshtoken", tokens)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data models.AuthResponse `json:"data"`
	}
	decodeBody(t, resp, &envelope)
	assert.NotEqual(t, tokens.RefreshToken, envelope.Data.RefreshToken)

	// Eski çiftle ikinci refresh 401 dönmeli.
	resp = postJSON(t, srv.URL+"/api/account/refreshtoken", tokens)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRateLimitOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, 2)

	body := models.LoginRequest{Email: "nobody@b.com", Password: "wrong"}

	for i := 0; i < 2; i++ {
		resp := postJSON(t, srv.URL+"/api/account/login", body)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp := postJSON(t, srv.URL+"/api/account/login", body)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestAdminOnlyDelete(t *testing.T) {
	srv, userRepo := newTestServer(t, 100)

	tokens := registerAndLogin(t, srv, "a@b.com", "P@ssw0rd1")

	deleteCountry := func() int {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/countries/1", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	// Sıradan kullanıcı silemez.
	assert.Equal(t, http.StatusForbidden, deleteCountry())

	// İlk deneme rol listesini cache'e koydu; TTL beklememek için
	// admin yetkisini ayrı bir kullanıcı üzerinden test ediyoruz.
	adminTokens := registerAndLogin(t, srv, "admin@b.com", "P@ssw0rd1")
	require.NoError(t, userRepo.AddToRole(t.Context(), adminTokens.UserID, "Administrator"))

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/countries/1", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
