// Package rating прогоняет Elo-рейтинг по истории партий турнира.
package rating

import (
	"math"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
)

const (
	// DefaultKFactor — стандартный K-фактор площадки.
	DefaultKFactor = 32
	// DefaultRating присваивается игрокам без записи рейтинга.
	DefaultRating = 1200
)

// Change — подписанные дельты рейтинга по одной партии.
type Change struct {
	GameID        int
	Player1Change int
	Player2Change int
}

// Propagate последовательно применяет Elo к партиям. games обязаны быть
// упорядочены по (round_number, id): рейтинги накапливаются в рабочей карте
// по ходу прохода, и партии поздних раундов считаются уже от обновлённых
// значений, а не от стартовых. Карта startingRatings не мутируется, поэтому
// повторный прогон с теми же входными данными даёт идентичные дельты.
//
// Баи и несыгранные партии дают (0, 0) и не трогают рабочие рейтинги.
// Игрок без стартового рейтинга получает defaultRating.
func Propagate(games []*models.Game, startingRatings map[int]int, kFactor, defaultRating int) []Change {
	working := make(map[int]int, len(startingRatings))
	for id, r := range startingRatings {
		working[id] = r
	}

	ratingOf := func(playerID int) int {
		if r, ok := working[playerID]; ok {
			return r
		}
		return defaultRating
	}

	changes := make([]Change, 0, len(games))

	for _, game := range games {
		if game.IsBye || game.Player2ID == nil {
			changes = append(changes, Change{GameID: game.ID})
			continue
		}

		var score1, score2 float64
		switch game.Result {
		case models.ResultWin1:
			score1, score2 = 1.0, 0.0
		case models.ResultWin2:
			score1, score2 = 0.0, 1.0
		case models.ResultDraw:
			score1, score2 = 0.5, 0.5
		default:
			// Партия не сыграна: дельты нулевые, проход продолжается.
			changes = append(changes, Change{GameID: game.ID})
			continue
		}

		p1 := game.Player1ID
		p2 := *game.Player2ID
		r1 := ratingOf(p1)
		r2 := ratingOf(p2)

		c1 := eloChange(r1, r2, score1, kFactor)
		c2 := eloChange(r2, r1, score2, kFactor)

		working[p1] = r1 + c1
		working[p2] = r2 + c2

		changes = append(changes, Change{
			GameID:        game.ID,
			Player1Change: c1,
			Player2Change: c2,
		})
	}

	return changes
}

func expectedScore(rating, opponentRating int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponentRating-rating)/400.0))
}

// eloChange округляется к ближайшему целому, половины — от нуля
// (math.Round).
func eloChange(rating, opponentRating int, score float64, kFactor int) int {
	return int(math.Round(float64(kFactor) * (score - expectedScore(rating, opponentRating))))
}
