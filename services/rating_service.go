package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pr-poehali-dev/tournament-site-builder/live"
	"github.com/pr-poehali-dev/tournament-site-builder/rating"
	"github.com/pr-poehali-dev/tournament-site-builder/repositories"
	"golang.org/x/sync/singleflight"
)

type RatingService interface {
	// Recalculate прогоняет Elo по всем партиям турнира в порядке
	// (round_number, id) и записывает дельты обратно. Возвращает число
	// обновлённых партий. Пересчёт идемпотентен: повторный запуск от тех
	// же стартовых рейтингов даёт те же дельты.
	Recalculate(ctx context.Context, tournamentID int) (int, error)
}

type ratingService struct {
	gameRepo repositories.GameRepository
	userRepo repositories.UserRepository
	hub      *live.Hub
	logger   *slog.Logger

	recalcGroup singleflight.Group
}

func NewRatingService(
	gameRepo repositories.GameRepository,
	userRepo repositories.UserRepository,
	hub *live.Hub,
	logger *slog.Logger,
) RatingService {
	return &ratingService{
		gameRepo: gameRepo,
		userRepo: userRepo,
		hub:      hub,
		logger:   logger,
	}
}

func (s *ratingService) Recalculate(ctx context.Context, tournamentID int) (int, error) {
	value, err, _ := s.recalcGroup.Do(strconv.Itoa(tournamentID), func() (interface{}, error) {
		return s.recalculate(ctx, tournamentID)
	})
	if err != nil {
		return 0, err
	}
	return value.(int), nil
}

func (s *ratingService) recalculate(ctx context.Context, tournamentID int) (int, error) {
	games, err := s.gameRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load games for tournament %d: %w", tournamentID, err)
	}
	if len(games) == 0 {
		return 0, ErrNoGamesFound
	}

	playerIDs := make([]int, 0, len(games)*2)
	seen := make(map[int]bool)
	for _, game := range games {
		if !seen[game.Player1ID] {
			seen[game.Player1ID] = true
			playerIDs = append(playerIDs, game.Player1ID)
		}
		if game.Player2ID != nil && !seen[*game.Player2ID] {
			seen[*game.Player2ID] = true
			playerIDs = append(playerIDs, *game.Player2ID)
		}
	}

	// Игроки без записи рейтинга получат rating.DefaultRating внутри
	// прохода, отсутствие строки — не ошибка.
	startingRatings, err := s.userRepo.GetRatings(ctx, playerIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load ratings for tournament %d: %w", tournamentID, err)
	}

	changes := rating.Propagate(games, startingRatings, rating.DefaultKFactor, rating.DefaultRating)

	if err := s.gameRepo.UpdateRatingChanges(ctx, changes); err != nil {
		return 0, fmt.Errorf("failed to save rating changes for tournament %d: %w", tournamentID, err)
	}

	s.logger.Info("tournament ratings recalculated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("updated_games", len(changes)))

	if s.hub != nil {
		s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), live.Message{
			Type:    live.EventRatingsUpdated,
			Payload: changes,
			RoomID:  strconv.Itoa(tournamentID),
		})
	}

	return len(changes), nil
}
