package models

import "time"

// Game — плоская запись матча в таблице games, по одной строке на партию.
// Именно по этим строкам, упорядоченным по (round_number, id), прогоняется
// пересчёт рейтинга.
type Game struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	RoundNumber  int         `json:"round_number"`
	Player1ID    int         `json:"player1_id"`
	Player2ID    *int        `json:"player2_id,omitempty"`
	Result       MatchResult `json:"result,omitempty"`
	IsBye        bool        `json:"is_bye"`

	// Подписанные дельты Elo, нули для баев и несыгранных партий.
	Player1RatingChange int `json:"player1_rating_change"`
	Player2RatingChange int `json:"player2_rating_change"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
