package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/pr-poehali-dev/tournament-site-builder/models"
)

var (
	ErrCityNotFound     = errors.New("city not found")
	ErrCityNameConflict = errors.New("city name conflict")
)

type CityRepository interface {
	Create(ctx context.Context, city *models.City) error
	List(ctx context.Context) ([]*models.City, error)
	Update(ctx context.Context, city *models.City) error
	Delete(ctx context.Context, id int) error
}

type postgresCityRepository struct {
	db *sql.DB
}

func NewPostgresCityRepository(db *sql.DB) CityRepository {
	return &postgresCityRepository{db: db}
}

func (r *postgresCityRepository) Create(ctx context.Context, city *models.City) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cities (name) VALUES ($1) RETURNING id`, city.Name,
	).Scan(&city.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrCityNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresCityRepository) List(ctx context.Context) ([]*models.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]*models.City, 0)
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, err
		}
		cities = append(cities, &city)
	}
	return cities, rows.Err()
}

func (r *postgresCityRepository) Update(ctx context.Context, city *models.City) error {
	result, err := r.db.ExecContext(ctx, `UPDATE cities SET name = $1 WHERE id = $2`, city.Name, city.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrCityNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrCityNotFound)
}

func (r *postgresCityRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCityNotFound)
}
