package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/repositories"
)

type Pairing struct {
	Player1ID int  `json:"player1_id"`
	Player2ID *int `json:"player2_id,omitempty"`
}

type GameService interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Game, error)
	CreatePairings(ctx context.Context, tournamentID, roundNumber int, pairings []Pairing) ([]*models.Game, error)
	SetResult(ctx context.Context, gameID int, result models.MatchResult) error
}

type gameService struct {
	gameRepo repositories.GameRepository
}

func NewGameService(gameRepo repositories.GameRepository) GameService {
	return &gameService{gameRepo: gameRepo}
}

func (s *gameService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Game, error) {
	games, err := s.gameRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for tournament %d: %w", tournamentID, err)
	}
	return games, nil
}

func (s *gameService) CreatePairings(ctx context.Context, tournamentID, roundNumber int, pairings []Pairing) ([]*models.Game, error) {
	if len(pairings) == 0 {
		return nil, ErrPairingsRequired
	}

	games := make([]*models.Game, 0, len(pairings))
	for _, pairing := range pairings {
		if pairing.Player1ID == 0 {
			continue
		}
		games = append(games, &models.Game{
			TournamentID: tournamentID,
			RoundNumber:  roundNumber,
			Player1ID:    pairing.Player1ID,
			Player2ID:    pairing.Player2ID,
			Result:       models.ResultPending,
			IsBye:        pairing.Player2ID == nil,
		})
	}
	if len(games) == 0 {
		return nil, ErrPairingsRequired
	}

	if err := s.gameRepo.CreateBatch(ctx, games); err != nil {
		return nil, fmt.Errorf("failed to create pairings for tournament %d round %d: %w", tournamentID, roundNumber, err)
	}
	return games, nil
}

func (s *gameService) SetResult(ctx context.Context, gameID int, result models.MatchResult) error {
	if !result.IsDecided() {
		return ErrResultRequired
	}
	if err := s.gameRepo.UpdateResult(ctx, gameID, result); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to update result for game %d: %w", gameID, err)
	}
	return nil
}
