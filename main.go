// Package main, konak backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'lar ile)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Service'leri oluştur (repository'ler ile)
//  5. Handler'ları oluştur (service'ler ile)
//  6. Middleware'ları oluştur (service + repo'lar ile)
//  7. HTTP router'ı kur, route'ları bağla
//  8. CORS yapılandır
//  9. HTTP Server'ı başlat
//  10. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ozank/konak/config"
	"github.com/ozank/konak/database"
	"github.com/ozank/konak/handlers"
	"github.com/ozank/konak/middleware"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/pkg/email"
	"github.com/ozank/konak/pkg/ratelimit"
	"github.com/ozank/konak/repository"
	"github.com/ozank/konak/services"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	logger := log.Default()
	logger.Println("[main] konak server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("[main] failed to load config: %v", err)
	}
	logger.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	// Migration'lar binary'ye gömülü — deploy tek dosya.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		logger.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		logger.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	tokenRepo := repository.NewSQLiteAuthTokenRepo(db.Conn)
	resetRepo := repository.NewSQLiteResetTokenRepo(db.Conn)
	countryRepo := repository.NewSQLiteCountryRepo(db.Conn)
	hotelRepo := repository.NewSQLiteHotelRepo(db.Conn)

	// ─── 4. Service Layer ───
	issuer := services.NewTokenIssuer(userRepo, cfg.JWT)
	refreshMgr := services.NewRefreshTokenManager(tokenRepo)
	authService := services.NewAuthService(userRepo, tokenRepo, issuer, refreshMgr, cfg.JWT, logger)

	// Email: API key tanımlıysa Resend, değilse log'a yazan sender.
	// Local geliştirmede reset linki log'dan kopyalanır.
	var sender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
	} else {
		logger.Println("[main] RESEND_API_KEY not set, password reset emails will be logged")
		sender = email.NewLogSender(cfg.Email.AppURL, logger)
	}
	resetService := services.NewPasswordResetService(userRepo, resetRepo, tokenRepo, sender, logger)

	countryService := services.NewCountryService(countryRepo)
	hotelService := services.NewHotelService(hotelRepo, countryRepo)

	// ─── 5. Handler Layer ───
	loginLimiter := ratelimit.NewLoginRateLimiter(
		cfg.RateLimit.LoginMaxAttempts,
		time.Duration(cfg.RateLimit.LoginWindowSecond)*time.Second,
	)

	accountHandler := handlers.NewAccountHandler(authService, resetService, loginLimiter)
	countryHandler := handlers.NewCountryHandler(countryService)
	hotelHandler := handlers.NewHotelHandler(hotelService)

	// Arka plan temizliği: süresi dolmuş reset token'ları ve uzun süredir
	// dokunulmamış refresh token'ları periyodik olarak sil. Refresh
	// token'ların kendi exp'i yok — eskime eşiği config'ten gelir.
	janitorStop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				cutoff := time.Now().Add(-time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour)

				if n, err := tokenRepo.RemoveStale(ctx, cutoff); err != nil {
					logger.Printf("[janitor] failed to remove stale refresh tokens: %v", err)
				} else if n > 0 {
					logger.Printf("[janitor] removed %d stale refresh tokens", n)
				}

				if n, err := resetRepo.DeleteExpired(ctx); err != nil {
					logger.Printf("[janitor] failed to remove expired reset tokens: %v", err)
				} else if n > 0 {
					logger.Printf("[janitor] removed %d expired reset tokens", n)
				}

				cancel()
			case <-janitorStop:
				return
			}
		}
	}()

	// ─── 6. Middleware ───
	authMW := middleware.NewAuthMiddleware(authService, userRepo)
	roleMW := middleware.NewRoleMiddleware(userRepo)
	adminOnly := roleMW.Require("Administrator")

	// ─── 7. Routes ───
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Account — register/login/refresh herkese açık, gerisi auth ister
	mux.HandleFunc("POST /api/account/register", accountHandler.Register)
	mux.HandleFunc("POST /api/account/login", accountHandler.Login)
	mux.HandleFunc("POST /api/account/refreshtoken", accountHandler.RefreshToken)
	mux.HandleFunc("POST /api/account/forgot-password", accountHandler.ForgotPassword)
	mux.HandleFunc("POST /api/account/reset-password", accountHandler.ResetPassword)
	mux.Handle("POST /api/account/logout", authMW.Require(
		http.HandlerFunc(accountHandler.Logout)))
	mux.Handle("GET /api/account/me", authMW.Require(
		http.HandlerFunc(accountHandler.Me)))

	// Countries — okuma herkese açık, yazma auth ister, silme admin ister
	mux.HandleFunc("GET /api/countries", countryHandler.List)
	mux.HandleFunc("GET /api/countries/{id}", countryHandler.Get)
	mux.Handle("POST /api/countries", authMW.Require(
		http.HandlerFunc(countryHandler.Create)))
	mux.Handle("PUT /api/countries/{id}", authMW.Require(
		http.HandlerFunc(countryHandler.Update)))
	mux.Handle("DELETE /api/countries/{id}", authMW.Require(
		adminOnly(http.HandlerFunc(countryHandler.Delete))))

	// Hotels — aynı yetki şeması
	mux.HandleFunc("GET /api/hotels", hotelHandler.List)
	mux.HandleFunc("GET /api/hotels/{id}", hotelHandler.Get)
	mux.Handle("POST /api/hotels", authMW.Require(
		http.HandlerFunc(hotelHandler.Create)))
	mux.Handle("PUT /api/hotels/{id}", authMW.Require(
		http.HandlerFunc(hotelHandler.Update)))
	mux.Handle("DELETE /api/hotels/{id}", authMW.Require(
		adminOnly(http.HandlerFunc(hotelHandler.Delete))))

	// ─── 8. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	logger.Println("[main] shutting down...")
	close(janitorStop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("[main] forced shutdown: %v", err)
	}

	logger.Println("[main] server stopped gracefully")
}
