package models

// Format — формат турнира (sealed, draft и т.д.). Coefficient задаёт вес
// турнира для рейтинга.
type Format struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
}
