package handlers

import (
	"net/http"

	"github.com/pr-poehali-dev/tournament-site-builder/services"
)

type FormatHandler struct {
	formatService services.FormatService
}

func NewFormatHandler(formatService services.FormatService) *FormatHandler {
	return &FormatHandler{formatService: formatService}
}

type formatInput struct {
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
}

func (h *FormatHandler) List(w http.ResponseWriter, r *http.Request) {
	formats, err := h.formatService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"formats": formats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FormatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input formatInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	format, err := h.formatService.Create(r.Context(), input.Name, input.Coefficient)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"format": format}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FormatHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "formatID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input formatInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	format, err := h.formatService.Update(r.Context(), id, input.Name, input.Coefficient)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"format": format}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FormatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "formatID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.formatService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
