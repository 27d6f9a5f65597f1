package models

import (
	"fmt"
	"strings"
)

// Hotel, bir ülkeye bağlı otel kaydını temsil eder.
type Hotel struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	CountryID int64   `json:"country_id"`
}

// CreateHotelRequest, yeni otel eklerken gelen veri.
type CreateHotelRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	CountryID int64   `json:"country_id"`
}

// Validate, CreateHotelRequest'i kontrol eder.
func (r *CreateHotelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errFieldRequired("name")
	}
	if r.CountryID <= 0 {
		return errFieldRequired("country_id")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}

// UpdateHotelRequest, otel güncellemesi için — ID, URL'deki id ile eşleşmeli.
type UpdateHotelRequest struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Rating    float64 `json:"rating"`
	CountryID int64   `json:"country_id"`
}

// Validate, UpdateHotelRequest'i kontrol eder.
func (r *UpdateHotelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errFieldRequired("name")
	}
	if r.CountryID <= 0 {
		return errFieldRequired("country_id")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}
