package repository

import (
	"context"
	"time"
)

// AuthTokenRepository, kullanıcıya bağlı isimli opak token'lar için interface.
// Refresh token'lar burada yaşar: (user_id, provider, name) üçlüsü başına
// en fazla bir değer.
//
// Set upsert semantiği taşır — aynı üçlüye ikinci yazış eski değeri EZER
// (last-write-wins). Aynı kullanıcı için eşzamanlı iki login/refresh
// yarışırsa kazanan yazanın token'ı geçerli kalır, diğeri sessizce
// kullanılamaz hale gelir; bu kabul edilen davranıştır ve store katmanında
// kilitlenerek "düzeltilmez".
type AuthTokenRepository interface {
	// Get, saklanan token değerini döner. Kayıt yoksa pkg.ErrNotFound.
	Get(ctx context.Context, userID, provider, name string) (string, error)

	// Set, token değerini yazar — var olan kaydı değiştirir (upsert).
	Set(ctx context.Context, userID, provider, name, value string) error

	// Remove, kaydı siler. Kayıt yoksa hata DÖNMEZ — idempotent.
	Remove(ctx context.Context, userID, provider, name string) error

	// RemoveAllForUser, kullanıcının tüm token'larını siler
	// (oturum invalidation: şifre reset, şüpheli refresh denemesi).
	RemoveAllForUser(ctx context.Context, userID string) error

	// RemoveStale, verilen zamandan eski token'ları siler ve silinen
	// satır sayısını döner. Arka plan temizliği kullanır — uzun süre
	// login olmayan kullanıcıların token'ları süresiz yaşamasın.
	RemoveStale(ctx context.Context, cutoff time.Time) (int64, error)
}
