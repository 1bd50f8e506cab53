package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/repositories"
	"github.com/pr-poehali-dev/tournament-site-builder/storage"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserInput struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
	City     *string         `json:"city,omitempty"`
}

type UpdateUserInput struct {
	Name     *string          `json:"name,omitempty"`
	Role     *models.UserRole `json:"role,omitempty"`
	City     *string          `json:"city,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
	Password *string          `json:"password,omitempty"`
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int) error
	UploadAvatar(ctx context.Context, id int, contentType string, file io.Reader) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Username == "" {
		return nil, ErrUsernameRequired
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	role := input.Role
	if role == "" {
		role = models.RolePlayer
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Name:         input.Name,
		Role:         role,
		City:         input.City,
		IsActive:     true,
		PasswordHash: string(hashedPassword),
		Rating:       1200,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrUsernameConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range users {
		s.populateAvatarURL(user)
		user.PasswordHash = ""
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		user.Name = *input.Name
	}
	if input.Role != nil {
		if err := validateRole(*input.Role); err != nil {
			return nil, err
		}
		user.Role = *input.Role
	}
	if input.City != nil {
		user.City = input.City
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrUsernameConflict
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}

	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, id int, contentType string, file io.Reader) (*models.User, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("avatars/%d", id)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload avatar for user %d: %w", id, err)
	}

	if err := s.userRepo.SetAvatarKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to save avatar key for user %d: %w", id, err)
	}

	user.AvatarKey = &key
	s.populateAvatarURL(user)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) populateAvatarURL(user *models.User) {
	if user.AvatarKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.PublicURL(*user.AvatarKey)
	if url != "" {
		user.AvatarURL = &url
	}
}

func validateRole(role models.UserRole) error {
	switch role {
	case models.RoleAdmin, models.RoleJudge, models.RolePlayer:
		return nil
	default:
		return ErrInvalidRole
	}
}
