package models

import "time"

// UserRole соответствует ENUM в БД.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleJudge  UserRole = "judge"
	RolePlayer UserRole = "player"
)

type User struct {
	ID           int      `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	City         *string  `json:"city,omitempty"`
	IsActive     bool     `json:"is_active"`
	PasswordHash string   `json:"-"`

	// Агрегированная игровая статистика, обновляется при пересчётах.
	Rating      int `json:"rating"`
	Tournaments int `json:"tournaments"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`

	CreatedAt time.Time `json:"created_at"`

	AvatarKey *string `json:"-"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
