package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pr-poehali-dev/tournament-site-builder/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	// DeleteCascade удаляет турнир вместе с его результатами и партиями
	// одной транзакцией.
	DeleteCascade(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, format, city, date, status, current_round, swiss_rounds, top_rounds, is_rated, judge_id, participants, dropped_player_ids, rounds, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	roundsJSON, err := marshalRounds(t.Rounds)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tournaments
			(name, format, city, date, status, current_round, swiss_rounds, top_rounds, is_rated, judge_id, participants, dropped_player_ids, rounds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		t.Name, t.Format, t.City, t.Date, t.Status, t.CurrentRound,
		t.SwissRounds, t.TopRounds, t.IsRated, t.JudgeID,
		pq.Array(intsToInt64s(t.Participants)),
		pq.Array(intsToInt64s(t.DroppedPlayerIDs)),
		roundsJSON,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTournamentNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) scanTournament(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	var participants, droppedIDs pq.Int64Array
	var roundsJSON []byte

	err := row.Scan(
		&t.ID, &t.Name, &t.Format, &t.City, &t.Date, &t.Status,
		&t.CurrentRound, &t.SwissRounds, &t.TopRounds, &t.IsRated, &t.JudgeID,
		&participants, &droppedIDs, &roundsJSON, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}

	t.Participants = int64sToInts(participants)
	t.DroppedPlayerIDs = int64sToInts(droppedIDs)

	t.Rounds = []models.Round{}
	if len(roundsJSON) > 0 {
		// Строгое декодирование: неизвестный результат матча — это
		// испорченный документ, а не молчаливо пропущенная строка.
		if err := json.Unmarshal(roundsJSON, &t.Rounds); err != nil {
			return nil, fmt.Errorf("tournament %d: malformed rounds document: %w", t.ID, err)
		}
	}

	return &t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return r.scanTournament(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) List(ctx context.Context, limit, offset int) ([]*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, errScan := r.scanTournament(rows)
		if errScan != nil {
			return nil, errScan
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	roundsJSON, err := marshalRounds(t.Rounds)
	if err != nil {
		return err
	}

	query := `
		UPDATE tournaments SET
			name = $1, format = $2, city = $3, date = $4, status = $5,
			current_round = $6, swiss_rounds = $7, top_rounds = $8, is_rated = $9,
			judge_id = $10, participants = $11, dropped_player_ids = $12, rounds = $13
		WHERE id = $14`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Format, t.City, t.Date, t.Status, t.CurrentRound,
		t.SwissRounds, t.TopRounds, t.IsRated, t.JudgeID,
		pq.Array(intsToInt64s(t.Participants)),
		pq.Array(intsToInt64s(t.DroppedPlayerIDs)),
		roundsJSON,
		t.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) DeleteCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("DeleteCascade failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tournament_results WHERE tournament_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete results for tournament %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE tournament_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete games for tournament %d: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := checkAffectedRows(result, ErrTournamentNotFound); err != nil {
		return err
	}

	return tx.Commit()
}

func marshalRounds(rounds []models.Round) ([]byte, error) {
	if rounds == nil {
		rounds = []models.Round{}
	}
	data, err := json.Marshal(rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rounds: %w", err)
	}
	return data, nil
}
