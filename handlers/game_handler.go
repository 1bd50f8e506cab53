package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/services"
)

type GameHandler struct {
	gameService services.GameService
}

func NewGameHandler(gameService services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := strconv.Atoi(r.URL.Query().Get("tournament_id"))
	if err != nil || tournamentID < 1 {
		badRequestResponse(w, r, errors.New("tournament_id is required"))
		return
	}

	games, err := h.gameService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) CreatePairings(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TournamentID int                `json:"tournament_id"`
		RoundNumber  int                `json:"round_number"`
		Pairings     []services.Pairing `json:"pairings"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TournamentID < 1 || input.RoundNumber < 1 {
		badRequestResponse(w, r, errors.New("tournament_id and round_number are required"))
		return
	}

	games, err := h.gameService.CreatePairings(r.Context(), input.TournamentID, input.RoundNumber, input.Pairings)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"games":   games,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GameHandler) SetResult(w http.ResponseWriter, r *http.Request) {
	var input struct {
		GameID int                `json:"game_id"`
		Result models.MatchResult `json:"result"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.GameID < 1 {
		badRequestResponse(w, r, errors.New("game_id is required"))
		return
	}

	if err := h.gameService.SetResult(r.Context(), input.GameID, input.Result); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
