// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface sayesinde:
// 1. Test: farklı bir implementasyon ile DB davranışı taklit edilebilir
// 2. Esneklik: SQLite'tan başka bir store'a geçiş sadece yeni implementasyon
// 3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
//
// Go'da interface implicit'tir — struct, interface'deki tüm method'ları
// implement ediyorsa otomatik olarak o interface'i sağlar.
package repository

import (
	"context"

	"github.com/ozank/konak/models"
)

// UserRepository, kullanıcı kayıtları ve onlara bağlı rol/claim verisi
// için interface — auth katmanının "credential store" tarafı.
type UserRepository interface {
	// Create, yeni kullanıcı kaydı oluşturur. ID ve SecurityStamp repo
	// tarafından atanır. Email/username çakışmasında pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, user *models.User) error

	// CreateInRole, kullanıcıyı oluşturur ve verilen rolü atar — tek
	// transaction içinde. Rol ataması başarısız olursa kullanıcı da
	// oluşmamış olur (yarım kayıt kalmaz).
	CreateInRole(ctx context.Context, user *models.User, roleName string) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdatePassword, yeni bcrypt hash yazar (reset akışı).
	UpdatePassword(ctx context.Context, userID, newPasswordHash string) error

	// UpdateSecurityStamp, kullanıcının oturum çapasını rotate eder.
	// Geçersiz refresh denemesi görüldüğünde ve şifre değişiminde çağrılır.
	UpdateSecurityStamp(ctx context.Context, userID, stamp string) error

	// AddToRole, kullanıcıya isimle rol atar (ör: "User").
	// Rol tanımlı değilse pkg.ErrNotFound döner.
	AddToRole(ctx context.Context, userID, roleName string) error

	// GetRoles, kullanıcının rol isimlerini atama sırasıyla döner.
	GetRoles(ctx context.Context, userID string) ([]string, error)

	// GetClaims, kullanıcıya bağlı saklanan custom claim'leri döner.
	GetClaims(ctx context.Context, userID string) ([]models.UserClaim, error)

	Delete(ctx context.Context, id string) error
}
