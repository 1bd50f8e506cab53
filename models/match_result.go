package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MatchResult — типизированный исход матча. Нормализует обе кодировки,
// встречающиеся в данных: JSONB-раунды хранят "player1"/"player2",
// таблица games хранит "win1"/"win2". Неизвестная строка — это испорченные
// данные и ошибка декодирования, а не молчаливый пропуск.
type MatchResult string

const (
	ResultPending MatchResult = ""
	ResultWin1    MatchResult = "win1"
	ResultWin2    MatchResult = "win2"
	ResultDraw    MatchResult = "draw"
)

func ParseMatchResult(s string) (MatchResult, error) {
	switch s {
	case "":
		return ResultPending, nil
	case "win1", "player1":
		return ResultWin1, nil
	case "win2", "player2":
		return ResultWin2, nil
	case "draw":
		return ResultDraw, nil
	default:
		return ResultPending, fmt.Errorf("unknown match result %q", s)
	}
}

func (r MatchResult) IsDecided() bool {
	return r == ResultWin1 || r == ResultWin2 || r == ResultDraw
}

func (r *MatchResult) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ResultPending
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("match result must be a string: %w", err)
	}
	parsed, err := ParseMatchResult(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Scan реализует sql.Scanner для NULL-able колонки result таблицы games.
func (r *MatchResult) Scan(value interface{}) error {
	if value == nil {
		*r = ResultPending
		return nil
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into MatchResult", value)
	}
	parsed, err := ParseMatchResult(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r MatchResult) Value() (driver.Value, error) {
	if r == ResultPending {
		return nil, nil
	}
	return string(r), nil
}
