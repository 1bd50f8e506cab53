package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/pr-poehali-dev/tournament-site-builder/models"
)

var (
	ErrFormatNotFound     = errors.New("format not found")
	ErrFormatNameConflict = errors.New("format name conflict")
)

type FormatRepository interface {
	Create(ctx context.Context, format *models.Format) error
	List(ctx context.Context) ([]*models.Format, error)
	Update(ctx context.Context, format *models.Format) error
	Delete(ctx context.Context, id int) error
}

type postgresFormatRepository struct {
	db *sql.DB
}

func NewPostgresFormatRepository(db *sql.DB) FormatRepository {
	return &postgresFormatRepository{db: db}
}

func (r *postgresFormatRepository) Create(ctx context.Context, format *models.Format) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO formats (name, coefficient) VALUES ($1, $2) RETURNING id`,
		format.Name, format.Coefficient,
	).Scan(&format.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrFormatNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresFormatRepository) List(ctx context.Context) ([]*models.Format, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, coefficient FROM formats ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	formats := make([]*models.Format, 0)
	for rows.Next() {
		var format models.Format
		if err := rows.Scan(&format.ID, &format.Name, &format.Coefficient); err != nil {
			return nil, err
		}
		formats = append(formats, &format)
	}
	return formats, rows.Err()
}

func (r *postgresFormatRepository) Update(ctx context.Context, format *models.Format) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE formats SET name = $1, coefficient = $2 WHERE id = $3`,
		format.Name, format.Coefficient, format.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrFormatNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrFormatNotFound)
}

func (r *postgresFormatRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM formats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFormatNotFound)
}
