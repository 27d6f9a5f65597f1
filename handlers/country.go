package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/services"
)

// CountryHandler, ülke katalog endpoint'lerini yöneten struct.
type CountryHandler struct {
	countryService services.CountryService
}

// NewCountryHandler, constructor.
func NewCountryHandler(countryService services.CountryService) *CountryHandler {
	return &CountryHandler{countryService: countryService}
}

// List godoc
// GET /api/countries
func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countryService.GetCountries(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, countries)
}

// Get godoc
// GET /api/countries/{id}
// Ülkeyi otelleriyle birlikte döner.
func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	country, err := h.countryService.GetCountry(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, country)
}

// Create godoc
// POST /api/countries — auth gerektirir.
func (h *CountryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCountryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	country, err := h.countryService.CreateCountry(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, country)
}

// Update godoc
// PUT /api/countries/{id} — auth gerektirir.
func (h *CountryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCountryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.countryService.UpdateCountry(r.Context(), id, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "country updated"})
}

// Delete godoc
// DELETE /api/countries/{id} — Administrator rolü gerektirir.
func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.countryService.DeleteCountry(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "country deleted"})
}

// parseID, path'teki {id} segmentini int64'e çevirir.
// Geçersizse 400 yazar ve (0, false) döner — caller return etmeli.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
