package handlers

import (
	"net/http"

	"github.com/pr-poehali-dev/tournament-site-builder/services"
)

type CityHandler struct {
	cityService services.CityService
}

func NewCityHandler(cityService services.CityService) *CityHandler {
	return &CityHandler{cityService: cityService}
}

type cityInput struct {
	Name string `json:"name"`
}

func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cityService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"cities": cities}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input cityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	city, err := h.cityService.Create(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"city": city}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "cityID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input cityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	city, err := h.cityService.Update(r.Context(), id, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"city": city}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "cityID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.cityService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
