// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - JWT token oluşturma
//   - Refresh token rotasyonu
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ozank/konak/config"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/repository"
)

// TokenIssuer, imzalı access token üretir.
//
// Claim seti şöyle kurulur:
//   - sub  = kullanıcının email'i (username = email kuralı)
//   - jti  = her token'da YENİ random UUID — iki token asla aynı jti taşımaz
//   - email, uid = kolay erişim için düz claim'ler
//   - kullanıcının DB'deki custom claim'leri (tip başına tek değer → string,
//     birden çok değer → array)
//   - rol isimleri "role" claim'i altında, custom claim'lerden SONRA
type TokenIssuer interface {
	IssueAccessToken(ctx context.Context, user *models.User) (string, error)
}

// tokenIssuer, TokenIssuer implementasyonu.
type tokenIssuer struct {
	userRepo repository.UserRepository
	cfg      config.JWTConfig
	key      []byte
}

// NewTokenIssuer, constructor.
func NewTokenIssuer(userRepo repository.UserRepository, cfg config.JWTConfig) TokenIssuer {
	return &tokenIssuer{
		userRepo: userRepo,
		cfg:      cfg,
		key:      []byte(cfg.Key),
	}
}

func (t *tokenIssuer) IssueAccessToken(ctx context.Context, user *models.User) (string, error) {
	userClaims, err := t.userRepo.GetClaims(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load user claims: %w", err)
	}

	roles, err := t.userRepo.GetRoles(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load user roles: %w", err)
	}

	// Rol isimleri custom claim'lerin ARKASINA, "role" tipiyle eklenir.
	for _, role := range roles {
		userClaims = append(userClaims, models.UserClaim{Type: "role", Value: role})
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.Email,
		"jti":   uuid.NewString(),
		"email": user.Email,
		"uid":   user.ID,
		"iss":   t.cfg.Issuer,
		"aud":   t.cfg.Audience,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(time.Duration(t.cfg.DurationInMinutes) * time.Minute)),
	}

	mergeUserClaims(claims, userClaims)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// mergeUserClaims, (tip, değer) çiftlerini MapClaims'e işler.
//
// Aynı (tip, değer) çifti birden fazla gelirse TEK kez sayılır (dedupe).
// Sonuç: tip başına tek değer kaldıysa düz string, birden çoksa string array.
// Registered claim isimleri (sub, jti, exp...) custom claim'lerce EZİLMEZ —
// map'te zaten varsa ve tek-değer/registered çakışması oluşacaksa atlanır.
func mergeUserClaims(claims jwt.MapClaims, userClaims []models.UserClaim) {
	registered := map[string]bool{
		"sub": true, "jti": true, "iss": true, "aud": true,
		"iat": true, "exp": true, "nbf": true,
		"email": true, "uid": true,
	}

	seen := make(map[models.UserClaim]bool)
	values := make(map[string][]string)
	var order []string

	for _, c := range userClaims {
		if registered[c.Type] {
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true

		if _, ok := values[c.Type]; !ok {
			order = append(order, c.Type)
		}
		values[c.Type] = append(values[c.Type], c.Value)
	}

	for _, claimType := range order {
		vals := values[claimType]
		if len(vals) == 1 {
			claims[claimType] = vals[0]
		} else {
			claims[claimType] = vals
		}
	}
}
