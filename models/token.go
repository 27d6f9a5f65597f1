package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, imzalı access token'ın payload'ının Go karşılığı.
//
// Token üretimi MapClaims üzerinden yapılır (serbest custom claim'ler
// de gömülebilsin diye); doğrulama tarafında ise bu strongly-typed
// struct'a parse edilir. jwt.ClaimStrings, "role" claim'inin hem tek
// string hem string dizisi olarak gelebilmesini handle eder —
// tek rolü olan kullanıcının token'ında "role":"User", birden fazla
// rolü olanda "role":["Administrator","User"] yazar.
type TokenClaims struct {
	Email string           `json:"email"`
	UID   string           `json:"uid"`
	Roles jwt.ClaimStrings `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// HasRole, claims içinde verilen rolün olup olmadığını kontrol eder.
func (c *TokenClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
