package models

import "time"

// TournamentResult — сохранённая строка итоговой таблицы турнира.
// Таблица полностью перезаписывается при каждом пересчёте.
type TournamentResult struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	Place        int       `json:"place" db:"place"`
	Points       int       `json:"points" db:"points"`
	Buchholz     int       `json:"buchholz" db:"buchholz"`
	SumBuchholz  int       `json:"sum_buchholz" db:"sum_buchholz"`
	Wins         int       `json:"wins" db:"wins"`
	Losses       int       `json:"losses" db:"losses"`
	Draws        int       `json:"draws" db:"draws"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Опционально подтягивается сервисом, в БД не хранится.
	Player *User `json:"player,omitempty" db:"-"`
}
