// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her yerde ayrı ayrı os.Getenv() çağırmak yerine tüm ayarlar tek bir
// Config struct'ında toplanır ve main.go'daki wire-up'ta dağıtılır.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/konak.db)
}

// JWTConfig, access ve refresh token ayarları.
//
// Issuer ve Audience imzalı token'ın iss/aud claim'lerine yazılır ve
// doğrulama sırasında kontrol edilir. Key HMAC-SHA256 için symmetric
// secret'tır — GİZLİ TUTULMALI.
type JWTConfig struct {
	Issuer             string
	Audience           string
	Key                string
	DurationInMinutes  int // Access token ömrü (varsayılan: 10)
	RefreshExpiryHours int // Stored refresh token temizlik eşiği (varsayılan: 168 = 7 gün)
}

// EmailConfig, password reset email gönderimi (Resend) ayarları.
// APIKey boşsa email gönderimi log'a düşer (development modu).
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string
	AppURL       string
}

// RateLimitConfig, login brute-force koruması ayarları.
type RateLimitConfig struct {
	LoginMaxAttempts  int // Pencere başına izin verilen deneme (varsayılan: 5)
	LoginWindowSecond int // Pencere süresi saniye (varsayılan: 120)
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyasını yükle — dosya yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "5292"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	duration, err := strconv.Atoi(getEnv("JWT_DURATION_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_HOURS", "168"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_HOURS: %w", err)
	}

	maxAttempts, err := strconv.Atoi(getEnv("LOGIN_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_MAX_ATTEMPTS: %w", err)
	}

	windowSec, err := strconv.Atoi(getEnv("LOGIN_WINDOW_SECONDS", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_WINDOW_SECONDS: %w", err)
	}

	jwtKey := getEnv("JWT_KEY", "")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_KEY environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/konak.db"),
		},
		JWT: JWTConfig{
			Issuer:             getEnv("JWT_ISSUER", "KonakApi"),
			Audience:           getEnv("JWT_AUDIENCE", "KonakApiClient"),
			Key:                jwtKey,
			DurationInMinutes:  duration,
			RefreshExpiryHours: refreshExpiry,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("EMAIL_FROM", "noreply@konak.app"),
			AppURL:       getEnv("APP_URL", "http://localhost:3000"),
		},
		RateLimit: RateLimitConfig{
			LoginMaxAttempts:  maxAttempts,
			LoginWindowSecond: windowSec,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:5292").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
