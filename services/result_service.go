package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pr-poehali-dev/tournament-site-builder/live"
	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/repositories"
	"github.com/pr-poehali-dev/tournament-site-builder/standings"
	"golang.org/x/sync/singleflight"
)

type ResultService interface {
	// Recalculate полностью пересчитывает итоговую таблицу турнира и
	// заменяет сохранённые результаты. Возвращает число записанных строк.
	Recalculate(ctx context.Context, tournamentID int) (int, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentResult, error)
	ListAll(ctx context.Context) ([]*models.TournamentResult, error)
}

type resultService struct {
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
	resultRepo     repositories.ResultRepository
	hub            *live.Hub
	logger         *slog.Logger

	// Схлопывает одновременные пересчёты одного турнира: второй вызов
	// дожидается результата первого вместо параллельной перезаписи.
	recalcGroup singleflight.Group
}

func NewResultService(
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	resultRepo repositories.ResultRepository,
	hub *live.Hub,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		resultRepo:     resultRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *resultService) Recalculate(ctx context.Context, tournamentID int) (int, error) {
	value, err, _ := s.recalcGroup.Do(strconv.Itoa(tournamentID), func() (interface{}, error) {
		return s.recalculate(ctx, tournamentID)
	})
	if err != nil {
		return 0, err
	}
	return value.(int), nil
}

func (s *resultService) recalculate(ctx context.Context, tournamentID int) (int, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return 0, ErrTournamentNotFound
		}
		return 0, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load user roster: %w", err)
	}
	roster := make(map[int]*models.User, len(users))
	for _, user := range users {
		roster[user.ID] = user
	}

	table, err := standings.Calculate(tournament, roster)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedTournamentData, err)
	}

	results := make([]*models.TournamentResult, 0, len(table))
	for _, standing := range table {
		results = append(results, &models.TournamentResult{
			TournamentID: tournamentID,
			PlayerID:     standing.ParticipantID,
			Place:        standing.Place,
			Points:       standing.Points,
			Buchholz:     standing.Buchholz,
			SumBuchholz:  standing.SumBuchholz,
			Wins:         standing.Wins,
			Losses:       standing.Losses,
			Draws:        standing.Draws,
		})
	}

	if err := s.resultRepo.ReplaceForTournament(ctx, tournamentID, results); err != nil {
		return 0, fmt.Errorf("failed to save results for tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("tournament standings recalculated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("results_saved", len(results)))

	if s.hub != nil {
		s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), live.Message{
			Type:    live.EventStandingsUpdated,
			Payload: results,
			RoomID:  strconv.Itoa(tournamentID),
		})
	}

	return len(results), nil
}

func (s *resultService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentResult, error) {
	results, err := s.resultRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for tournament %d: %w", tournamentID, err)
	}
	return results, nil
}

func (s *resultService) ListAll(ctx context.Context) ([]*models.TournamentResult, error) {
	results, err := s.resultRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return results, nil
}
