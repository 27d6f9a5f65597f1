// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda
// API'den gelen/giden verilerin şeklini de belirler. `json:"..."` tag'leri
// struct field'larının JSON'a nasıl serialize edileceğini söyler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// emailRegex, pratikte yeterli basit bir email format kontrolü.
// RFC 5322'nin tamamını kovalamıyoruz — boşluksuz local@domain.tld yeterli.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRegex, email format regex'ini döner (servislerde tekrar kullanılır).
func EmailRegex() *regexp.Regexp { return emailRegex }

// User, bir API kullanıcısını temsil eder.
//
// Username her zaman Email ile aynı değeri taşır (kayıt sırasında set edilir)
// ama ayrı kolon olarak durur — refresh akışı kullanıcıyı username üzerinden
// arar, login ise email üzerinden.
//
// SecurityStamp, kullanıcının oturum çapasıdır: şifre değiştiğinde veya
// geçersiz bir refresh denemesi görüldüğünde rotate edilir. json:"-" ile
// API response'larına asla çıkmaz.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PasswordHash  string    `json:"-"`
	SecurityStamp string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserClaim, kullanıcıya bağlı saklanan serbest (key-value) claim.
// Token üretilirken rol claim'leri ile birleştirilip access token'a gömülür.
type UserClaim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// FieldError, register akışının alan-bazlı hata birimi: (code, description).
// Boş liste başarı demektir — caller her hatayı ilgili form alanına map'ler.
type FieldError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CreateUserRequest, kayıt olurken gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate, CreateUserRequest'i kontrol eder ve alan-bazlı hata listesi döner.
// Boş liste = geçerli istek. Birden fazla alan hatalıysa hepsi birden döner,
// kullanıcı formu tek seferde düzeltebilsin.
func (r *CreateUserRequest) Validate() []FieldError {
	var errs []FieldError

	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		errs = append(errs, FieldError{Code: "EmailRequired", Description: "email is required"})
	} else if !emailRegex.MatchString(r.Email) {
		errs = append(errs, FieldError{Code: "InvalidEmail", Description: "email is not well-formed"})
	}

	if r.Password == "" {
		errs = append(errs, FieldError{Code: "PasswordRequired", Description: "password is required"})
	} else if utf8.RuneCountInString(r.Password) < 6 {
		errs = append(errs, FieldError{Code: "PasswordTooShort", Description: "password must be at least 6 characters"})
	}

	r.FirstName = strings.TrimSpace(r.FirstName)
	if r.FirstName == "" {
		errs = append(errs, FieldError{Code: "FirstNameRequired", Description: "first name is required"})
	}

	r.LastName = strings.TrimSpace(r.LastName)
	if r.LastName == "" {
		errs = append(errs, FieldError{Code: "LastNameRequired", Description: "last name is required"})
	}

	return errs
}

// LoginRequest, giriş yaparken gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return errFieldRequired("email")
	}
	if r.Password == "" {
		return errFieldRequired("password")
	}
	return nil
}

// errFieldRequired, "x is required" formatında validation hatası üretir.
func errFieldRequired(name string) error {
	return fmt.Errorf("%s is required", name)
}

// AuthResponse, başarılı Login/RefreshSession sonrası dönen üçlü.
// RefreshSession isteği de aynı şekli kullanır — client elindeki üçlüyü
// olduğu gibi geri gönderir.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	UserID       string `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}
