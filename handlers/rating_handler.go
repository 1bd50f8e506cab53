package handlers

import (
	"errors"
	"net/http"

	"github.com/pr-poehali-dev/tournament-site-builder/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Recalculate принимает POST с телом {"tournament_id": N} и прогоняет
// Elo по всем партиям турнира, записывая дельты обратно в games.
func (h *RatingHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
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

	updated, err := h.ratingService.Recalculate(r.Context(), input.TournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success":       true,
		"updated_games": updated,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
