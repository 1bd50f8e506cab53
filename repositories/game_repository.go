package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/rating"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	// ListByTournament возвращает партии турнира, упорядоченные по
	// (round_number, id). Порядок обязателен для пересчёта рейтинга.
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Game, error)
	CreateBatch(ctx context.Context, games []*models.Game) error
	UpdateResult(ctx context.Context, gameID int, result models.MatchResult) error
	// UpdateRatingChanges записывает дельты всех партий одной транзакцией.
	UpdateRatingChanges(ctx context.Context, changes []rating.Change) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, tournament_id, round_number, player1_id, player2_id, result, is_bye, player1_rating_change, player2_rating_change, created_at, updated_at`

func (r *postgresGameRepository) scanGame(row interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.TournamentID, &g.RoundNumber, &g.Player1ID, &g.Player2ID,
		&g.Result, &g.IsBye, &g.Player1RatingChange, &g.Player2RatingChange,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	return &g, nil
}

func (r *postgresGameRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE tournament_id = $1 ORDER BY round_number, id`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g, errScan := r.scanGame(rows)
		if errScan != nil {
			return nil, errScan
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) CreateBatch(ctx context.Context, games []*models.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games (tournament_id, round_number, player1_id, player2_id, result, is_bye)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, g := range games {
		err = stmt.QueryRowContext(ctx,
			g.TournamentID, g.RoundNumber, g.Player1ID, g.Player2ID, g.Result, g.IsBye,
		).Scan(&g.ID, &g.CreatedAt)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for round %d player %d: %w", g.RoundNumber, g.Player1ID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresGameRepository) UpdateResult(ctx context.Context, gameID int, result models.MatchResult) error {
	query := `UPDATE games SET result = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, result, gameID)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateRatingChanges(ctx context.Context, changes []rating.Change) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("UpdateRatingChanges failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE games SET player1_rating_change = $1, player2_rating_change = $2, updated_at = NOW()
		WHERE id = $3`)
	if err != nil {
		return fmt.Errorf("UpdateRatingChanges failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, change := range changes {
		if _, err := stmt.ExecContext(ctx, change.Player1Change, change.Player2Change, change.GameID); err != nil {
			return fmt.Errorf("UpdateRatingChanges failed for game %d: %w", change.GameID, err)
		}
	}

	return tx.Commit()
}
