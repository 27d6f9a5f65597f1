// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error
// değişkenleri tanımlarız, karşılaştırma errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Service katmanı bu error'ları (gerekirse fmt.Errorf("%w: ...") ile
// sararak) döner, handler katmanı HTTP status code'larına map'ler.
package pkg

import "errors"

// Domain-level error'lar.
//
// ErrUnauthorized özellikle önemli: login ve refresh akışlarında
// "kullanıcı yok", "şifre yanlış" ve "refresh token geçersiz" durumlarının
// ÜÇÜ DE aynı error ile döner. Caller hangi kontrolün başarısız olduğunu
// ayırt edemez — user enumeration'a karşı bilinçli bir tasarım.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
