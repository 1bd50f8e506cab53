package services

import (
	"context"
	"testing"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{
		ID:           1,
		Username:     "judge1",
		Role:         models.RoleJudge,
		IsActive:     true,
		PasswordHash: hashPassword(t, "secret"),
	})
	svc := NewAuthService(userRepo)

	user, err := svc.Login(context.Background(), LoginInput{Username: "judge1", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, models.RoleJudge, user.Role)
	assert.Empty(t, user.PasswordHash, "хеш пароля не должен покидать сервис")
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{
		ID:           1,
		Username:     "judge1",
		IsActive:     true,
		PasswordHash: hashPassword(t, "secret"),
	})
	svc := NewAuthService(userRepo)

	_, err := svc.Login(context.Background(), LoginInput{Username: "judge1", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	// Несуществующий логин неотличим от неверного пароля.
	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "secret"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestAuthService_LoginBlockedUser(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{
		ID:           1,
		Username:     "banned",
		IsActive:     false,
		PasswordHash: hashPassword(t, "secret"),
	})
	svc := NewAuthService(userRepo)

	_, err := svc.Login(context.Background(), LoginInput{Username: "banned", Password: "secret"})
	assert.ErrorIs(t, err, ErrUserBlocked)
}
