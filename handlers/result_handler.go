package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pr-poehali-dev/tournament-site-builder/services"
)

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("tournament_id")
	if rawID == "" {
		results, err := h.resultService.ListAll(r.Context())
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	tournamentID, err := strconv.Atoi(rawID)
	if err != nil || tournamentID < 1 {
		badRequestResponse(w, r, errors.New("invalid tournament_id"))
		return
	}

	results, err := h.resultService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Recalculate принимает POST с телом {"tournament_id": N}, полностью
// пересчитывает и перезаписывает итоговую таблицу турнира.
func (h *ResultHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TournamentID int `json:"tournament_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TournamentID < 1 {
		badRequestResponse(w, r, errors.New("tournament_id is required"))
		return
	}

	saved, err := h.resultService.Recalculate(r.Context(), input.TournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success":       true,
		"tournament_id": input.TournamentID,
		"results_saved": saved,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
