package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/repositories"
)

type FormatService interface {
	Create(ctx context.Context, name string, coefficient float64) (*models.Format, error)
	List(ctx context.Context) ([]*models.Format, error)
	Update(ctx context.Context, id int, name string, coefficient float64) (*models.Format, error)
	Delete(ctx context.Context, id int) error
}

type formatService struct {
	formatRepo repositories.FormatRepository
}

func NewFormatService(formatRepo repositories.FormatRepository) FormatService {
	return &formatService{formatRepo: formatRepo}
}

func (s *formatService) Create(ctx context.Context, name string, coefficient float64) (*models.Format, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if coefficient <= 0 {
		coefficient = 1
	}
	format := &models.Format{Name: name, Coefficient: coefficient}
	if err := s.formatRepo.Create(ctx, format); err != nil {
		if errors.Is(err, repositories.ErrFormatNameConflict) {
			return nil, ErrFormatNameConflict
		}
		return nil, fmt.Errorf("failed to create format: %w", err)
	}
	return format, nil
}

func (s *formatService) List(ctx context.Context) ([]*models.Format, error) {
	formats, err := s.formatRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list formats: %w", err)
	}
	return formats, nil
}

func (s *formatService) Update(ctx context.Context, id int, name string, coefficient float64) (*models.Format, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	format := &models.Format{ID: id, Name: name, Coefficient: coefficient}
	if err := s.formatRepo.Update(ctx, format); err != nil {
		switch {
		case errors.Is(err, repositories.ErrFormatNotFound):
			return nil, ErrFormatNotFound
		case errors.Is(err, repositories.ErrFormatNameConflict):
			return nil, ErrFormatNameConflict
		}
		return nil, fmt.Errorf("failed to update format %d: %w", id, err)
	}
	return format, nil
}

func (s *formatService) Delete(ctx context.Context, id int) error {
	if err := s.formatRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrFormatNotFound) {
			return ErrFormatNotFound
		}
		return fmt.Errorf("failed to delete format %d: %w", id, err)
	}
	return nil
}
