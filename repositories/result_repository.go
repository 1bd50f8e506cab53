package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
)

var ErrTournamentResultNotFound = errors.New("tournament result not found")

type ResultRepository interface {
	// ReplaceForTournament атомарно заменяет сохранённую таблицу турнира:
	// удаление старых строк и вставка новых идут одной транзакцией, чтобы
	// читатели не увидели полуобновлённое состояние.
	ReplaceForTournament(ctx context.Context, tournamentID int, results []*models.TournamentResult) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentResult, error)
	ListAll(ctx context.Context) ([]*models.TournamentResult, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

const resultColumns = `id, tournament_id, player_id, place, points, buchholz, sum_buchholz, wins, losses, draws, created_at`

func (r *postgresResultRepository) ReplaceForTournament(ctx context.Context, tournamentID int, results []*models.TournamentResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceForTournament failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tournament_results WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("failed to delete old results for tournament %d: %w", tournamentID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tournament_results
			(tournament_id, player_id, place, points, buchholz, sum_buchholz, wins, losses, draws)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("ReplaceForTournament failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, result := range results {
		_, err = stmt.ExecContext(ctx,
			tournamentID, result.PlayerID, result.Place, result.Points,
			result.Buchholz, result.SumBuchholz, result.Wins, result.Losses, result.Draws,
		)
		if err != nil {
			return fmt.Errorf("ReplaceForTournament failed for player %d: %w", result.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresResultRepository) scanResult(row interface{ Scan(...interface{}) error }) (*models.TournamentResult, error) {
	var res models.TournamentResult
	err := row.Scan(
		&res.ID, &res.TournamentID, &res.PlayerID, &res.Place, &res.Points,
		&res.Buchholz, &res.SumBuchholz, &res.Wins, &res.Losses, &res.Draws,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentResultNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament result: %w", err)
	}
	return &res, nil
}

func (r *postgresResultRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.TournamentResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*models.TournamentResult, 0)
	for rows.Next() {
		res, errScan := r.scanResult(rows)
		if errScan != nil {
			return nil, errScan
		}
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *postgresResultRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentResult, error) {
	query := `SELECT ` + resultColumns + ` FROM tournament_results WHERE tournament_id = $1 ORDER BY place ASC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresResultRepository) ListAll(ctx context.Context) ([]*models.TournamentResult, error) {
	query := `SELECT ` + resultColumns + ` FROM tournament_results ORDER BY tournament_id DESC, place ASC`
	return r.list(ctx, query)
}
