package models

import "strings"

// Country, katalogdaki bir ülkeyi temsil eder.
// Hotels alanı sadece detay sorgusunda (GET /api/countries/{id}) doldurulur;
// liste endpoint'i yalın country kayıtları döner.
type Country struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Hotels    []Hotel `json:"hotels,omitempty"`
}

// CreateCountryRequest, yeni ülke eklerken gelen veri.
type CreateCountryRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Validate, CreateCountryRequest'i kontrol eder.
func (r *CreateCountryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errFieldRequired("name")
	}
	r.ShortName = strings.TrimSpace(r.ShortName)
	return nil
}

// UpdateCountryRequest, ülke güncellemesi için. ID body'de de taşınır ve
// URL'deki id ile eşleşmek ZORUNDADIR — eşleşmezse istek reddedilir.
type UpdateCountryRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// Validate, UpdateCountryRequest'i kontrol eder.
func (r *UpdateCountryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errFieldRequired("name")
	}
	r.ShortName = strings.TrimSpace(r.ShortName)
	return nil
}
