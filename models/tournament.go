package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusSetup     TournamentStatus = "setup"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
	StatusConfirmed TournamentStatus = "confirmed"
)

// Match — пара внутри раунда. Player2ID == nil означает бай: автоматическая
// победа первого игрока, соперник при этом не засчитывается.
type Match struct {
	ID          string      `json:"id"`
	Player1ID   int         `json:"player1Id"`
	Player2ID   *int        `json:"player2Id,omitempty"`
	Result      MatchResult `json:"result,omitempty"`
	TableNumber *int        `json:"tableNumber,omitempty"`
}

// Round — упорядоченный раунд турнира. Номер раунда задаёт порядок обработки
// и границу swiss_rounds.
type Round struct {
	ID          string  `json:"id"`
	Number      int     `json:"number"`
	Matches     []Match `json:"matches"`
	IsCompleted bool    `json:"isCompleted"`
}

// Tournament представляет турнир. Rounds хранится в колонке rounds (JSONB),
// Participants и DroppedPlayerIDs — integer[].
type Tournament struct {
	ID               int              `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Format           string           `json:"format" db:"format"`
	City             *string          `json:"city,omitempty" db:"city"`
	Date             *time.Time       `json:"date,omitempty" db:"date"`
	Status           TournamentStatus `json:"status" db:"status"`
	CurrentRound     int              `json:"current_round" db:"current_round"`
	SwissRounds      int              `json:"swiss_rounds" db:"swiss_rounds"`
	TopRounds        int              `json:"top_rounds" db:"top_rounds"`
	IsRated          bool             `json:"is_rated" db:"is_rated"`
	JudgeID          *int             `json:"judge_id,omitempty" db:"judge_id"`
	Participants     []int            `json:"participants" db:"participants"`
	DroppedPlayerIDs []int            `json:"dropped_player_ids" db:"dropped_player_ids"`
	Rounds           []Round          `json:"rounds" db:"rounds"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
}
