// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/pkg/ratelimit"
	"github.com/ozank/konak/services"
)

// AccountHandler, hesap ve oturum endpoint'lerini yöneten struct.
// Service interface'leri ve rate limiter constructor'dan alınır (DI).
type AccountHandler struct {
	authService  services.AuthService
	resetService services.PasswordResetService
	loginLimiter *ratelimit.LoginRateLimiter
}

// NewAccountHandler, constructor.
// loginLimiter: Login brute-force koruması. nil ise rate limiting devre dışı kalır.
func NewAccountHandler(
	authService services.AuthService,
	resetService services.PasswordResetService,
	loginLimiter *ratelimit.LoginRateLimiter,
) *AccountHandler {
	return &AccountHandler{
		authService:  authService,
		resetService: resetService,
		loginLimiter: loginLimiter,
	}
}

// Register godoc
// POST /api/account/register
//
// Başarıda 201 döner. Validation veya duplicate email durumunda 400 +
// field error listesi döner:
//
//	{ "success": false, "errors": [{"code": "...", "description": "..."}] }
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fieldErrors, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if len(fieldErrors) > 0 {
		pkg.FieldErrors(w, http.StatusBadRequest, fieldErrors)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]string{
		"message": "registration successful",
	})
}

// Login godoc
// POST /api/account/login
//
// Rate limiting: IP bazlı brute-force koruması.
// - Pencere içinde limit aşılırsa 429 Too Many Requests + Retry-After döner.
// - Başarılı login sayacı sıfırlar — meşru kullanıcı bloke olmaz.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %d seconds", retryAfter))
		return
	}

	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Başarılı login — sayacı sıfırla.
	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, resp)
}

// RefreshToken godoc
// POST /api/account/refreshtoken
// Body: { "access_token": "...", "user_id": "...", "refresh_token": "..." }
//
// Süresi dolmuş access token + canlı refresh token → yeni token çifti.
// Herhangi bir tutarsızlıkta 401 döner; neden ayırt edilemez.
func (h *AccountHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.AuthResponse

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AccessToken == "" || req.UserID == "" || req.RefreshToken == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest,
			"access_token, user_id and refresh_token are required")
		return
	}

	resp, err := h.authService.RefreshSession(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, resp)
}

// Logout godoc
// POST /api/account/logout — auth gerektirir.
// Kullanıcının refresh token'ını iptal eder.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me godoc
// GET /api/account/me — auth gerektirir.
// Doğrulanmış kullanıcının profilini döner.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// ForgotPassword godoc
// POST /api/account/forgot-password
// Body: { "email": "..." }
//
// Güvenlik: Email DB'de yoksa bile aynı success yanıtı döner (enumeration koruması).
// Cooldown aktifse kalan süre response'ta döner — frontend geri sayım gösterir.
func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	cooldown, err := h.resetService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if cooldown > 0 {
		pkg.JSON(w, http.StatusOK, map[string]any{
			"message":  "cooldown active",
			"cooldown": cooldown,
		})
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "if the email exists, a reset link has been sent",
	})
}

// ResetPassword godoc
// POST /api/account/reset-password
// Body: { "token": "...", "new_password": "..." }
//
// Email'deki token ile şifre sıfırlar. Şifre güncellenir, tüm oturumlar düşer.
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.resetService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "password has been reset successfully",
	})
}
