package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ozank/konak/models"
	"github.com/ozank/konak/pkg"
	"github.com/ozank/konak/services"
)

// HotelHandler, otel katalog endpoint'lerini yöneten struct.
type HotelHandler struct {
	hotelService services.HotelService
}

// NewHotelHandler, constructor.
func NewHotelHandler(hotelService services.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

// List godoc
// GET /api/hotels
func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.hotelService.GetHotels(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, hotels)
}

// Get godoc
// GET /api/hotels/{id}
func (h *HotelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetHotel(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, hotel)
}

// Create godoc
// POST /api/hotels — auth gerektirir.
func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHotelRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hotel, err := h.hotelService.CreateHotel(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, hotel)
}

// Update godoc
// PUT /api/hotels/{id} — auth gerektirir.
func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateHotelRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.hotelService.UpdateHotel(r.Context(), id, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "hotel updated"})
}

// Delete godoc
// DELETE /api/hotels/{id} — Administrator rolü gerektirir.
func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.hotelService.DeleteHotel(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "hotel deleted"})
}
