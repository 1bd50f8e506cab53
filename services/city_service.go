package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/repositories"
)

type CityService interface {
	Create(ctx context.Context, name string) (*models.City, error)
	List(ctx context.Context) ([]*models.City, error)
	Update(ctx context.Context, id int, name string) (*models.City, error)
	Delete(ctx context.Context, id int) error
}

type cityService struct {
	cityRepo repositories.CityRepository
}

func NewCityService(cityRepo repositories.CityRepository) CityService {
	return &cityService{cityRepo: cityRepo}
}

func (s *cityService) Create(ctx context.Context, name string) (*models.City, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	city := &models.City{Name: name}
	if err := s.cityRepo.Create(ctx, city); err != nil {
		if errors.Is(err, repositories.ErrCityNameConflict) {
			return nil, ErrCityNameConflict
		}
		return nil, fmt.Errorf("failed to create city: %w", err)
	}
	return city, nil
}

func (s *cityService) List(ctx context.Context) ([]*models.City, error) {
	cities, err := s.cityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (s *cityService) Update(ctx context.Context, id int, name string) (*models.City, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	city := &models.City{ID: id, Name: name}
	if err := s.cityRepo.Update(ctx, city); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCityNotFound):
			return nil, ErrCityNotFound
		case errors.Is(err, repositories.ErrCityNameConflict):
			return nil, ErrCityNameConflict
		}
		return nil, fmt.Errorf("failed to update city %d: %w", id, err)
	}
	return city, nil
}

func (s *cityService) Delete(ctx context.Context, id int) error {
	if err := s.cityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCityNotFound) {
			return ErrCityNotFound
		}
		return fmt.Errorf("failed to delete city %d: %w", id, err)
	}
	return nil
}
