package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ozank/konak/config"
	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/repository"
	"golang.org/x/crypto/bcrypt"
)

// defaultRole, register sonrası her kullanıcıya atanan rol.
const defaultRole = "User"

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
//
// Register field-error listesi döner: boş liste = başarı. Diğer tüm
// operasyonlar klasik (value, error) çiftiyle çalışır ve auth
// başarısızlıklarını TEK bir pkg.ErrUnauthorized'a indirger — caller
// "kullanıcı yok" ile "şifre yanlış"ı AYIRT EDEMEZ. Bu bilinçli:
// hata mesajından hesap varlığı sızdırmıyoruz.
type AuthService interface {
	Register(ctx context.Context, req *models.CreateUserRequest) ([]models.FieldError, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	RefreshSession(ctx context.Context, req *models.AuthResponse) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// authService, AuthService implementasyonu.
type authService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.AuthTokenRepository
	issuer     TokenIssuer
	refreshMgr RefreshTokenManager
	jwtCfg     config.JWTConfig
	logger     *log.Logger
}

// NewAuthService, constructor.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.AuthTokenRepository,
	issuer TokenIssuer,
	refreshMgr RefreshTokenManager,
	jwtCfg config.JWTConfig,
	logger *log.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		issuer:     issuer,
		refreshMgr: refreshMgr,
		jwtCfg:     jwtCfg,
		logger:     logger,
	}
}

// Register, yeni kullanıcı kaydı oluşturur.
//
// Username = Email kuralı: ayrı bir kullanıcı adı alanı yok, login
// email ile yapılır. Dönen []FieldError boşsa kayıt başarılıdır;
// doluysa istek reddedilmiştir ve hiçbir yan etki oluşmamıştır.
// İkinci dönüş değeri yalnızca altyapı hataları (DB down vb.) içindir.
func (s *authService) Register(ctx context.Context, req *models.CreateUserRequest) ([]models.FieldError, error) {
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		return fieldErrors, nil
	}

	// Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}

	// Kayıt + varsayılan rol tek transaction: rol ataması patlarsa
	// kullanıcı da oluşmaz.
	if err := s.userRepo.CreateInRole(ctx, user, defaultRole); err != nil {
		if errors.Is(err, pkg.ErrAlreadyExists) {
			return []models.FieldError{{
				Code:        "DuplicateEmail",
				Description: fmt.Sprintf("Email '%s' is already taken.", req.Email),
			}}, nil
		}
		return nil, err
	}

	s.logger.Printf("[auth] user registered: %s", user.ID)
	return nil, nil
}

// Login, email + şifre ile giriş yapar ve token çifti döner.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, pkg.ErrUnauthorized
	}

	return s.issueSession(ctx, user)
}

// RefreshSession, (eski access token, refresh token, user id) üçlüsünden
// yeni bir token çifti üretir.
//
// Access token burada İMZASIZ ve SÜRE KONTROLSÜZ decode edilir — token
// zaten süresi dolduğu İÇİN buradayız, doğrulama yükü refresh token'ın
// üstündedir. Access token'ın tek görevi "kim olduğunu iddia ettiğini"
// söylemek; iddianın ispatı saklanan refresh token'la eşleşmektir.
//
// Refresh token eşleşmezse hesap olası çalıntı token'a karşı korunur:
// security stamp döndürülür ve kullanıcının TÜM token'ları silinir.
func (s *authService) RefreshSession(ctx context.Context, req *models.AuthResponse) (*models.AuthResponse, error) {
	claims := &models.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(req.AccessToken, claims); err != nil {
		return nil, pkg.ErrUnauthorized
	}

	// Kimlik iddiası önce email claim'inden okunur; email yoksa sub'a
	// düşülür. Kendi ürettiğimiz token'larda ikisi aynı değeri taşır.
	username := claims.Email
	if username == "" {
		username, _ = claims.GetSubject()
	}
	if username == "" {
		return nil, pkg.ErrUnauthorized
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrUnauthorized
		}
		return nil, err
	}

	// Token'daki kimlik ile istekteki user_id tutarlı olmalı.
	if user.ID != req.UserID {
		return nil, pkg.ErrUnauthorized
	}

	if err := s.refreshMgr.VerifyRefreshToken(ctx, user.ID, req.RefreshToken); err != nil {
		if errors.Is(err, pkg.ErrUnauthorized) {
			return nil, s.invalidateSessions(ctx, user.ID)
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

// Logout, kullanıcının refresh token'ını iptal eder.
// Access token sunucu tarafında iptal EDİLMEZ — kalan ömrü boyunca
// geçerli kalır (kısa exp bu yüzden önemli).
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.refreshMgr.RevokeRefreshToken(ctx, userID)
}

// ValidateAccessToken, JWT access token'ı TAM doğrulamayla (imza, exp,
// issuer, audience) parse eder ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return []byte(s.jwtCfg.Key), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.jwtCfg.Issuer),
		jwt.WithAudience(s.jwtCfg.Audience),
	)

	if err != nil || !token.Valid {
		return nil, pkg.ErrUnauthorized
	}

	return claims, nil
}

// ─── Private Helpers ───

// issueSession, access + refresh token çiftini üretir.
// Refresh token rotasyonu CreateRefreshToken içinde olur: önceki token
// bu çağrıyla anında geçersizleşir.
func (s *authService) issueSession(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.issuer.IssueAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.refreshMgr.CreateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		UserID:       user.ID,
		RefreshToken: refreshToken,
	}, nil
}

// invalidateSessions, şüpheli refresh denemesi sonrası hesabı korumaya alır:
// security stamp döner ve kullanıcının tüm auth token'ları silinir.
// Dönen hata HER durumda pkg.ErrUnauthorized'dır; invalidation sırasında
// DB hatası olursa loglanır ama caller'a yine unauthorized gider.
func (s *authService) invalidateSessions(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateSecurityStamp(ctx, userID, uuid.NewString()); err != nil {
		s.logger.Printf("[auth] failed to rotate security stamp for %s: %v", userID, err)
	}
	if err := s.tokenRepo.RemoveAllForUser(ctx, userID); err != nil {
		s.logger.Printf("[auth] failed to remove tokens for %s: %v", userID, err)
	}
	return pkg.ErrUnauthorized
}
