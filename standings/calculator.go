// Package standings считает итоговую таблицу швейцарского турнира:
// очки с учётом дропов, Бухгольц и сумма Бухгольцев как тай-брейки.
package standings

import (
	"fmt"
	"sort"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
)

const (
	winPoints  = 3
	drawPoints = 1
)

// Standing — строка итоговой таблицы для одного участника.
type Standing struct {
	ParticipantID int
	User          *models.User
	Points        int
	Wins          int
	Losses        int
	Draws         int
	OpponentIDs   []int
	Buchholz      int
	SumBuchholz   int
	Place         int
}

// Calculate строит итоговую таблицу по истории раундов турнира.
// Чистая функция: никакого I/O, никаких мутаций входных данных.
//
// Участники без записи в roster молча пропускаются (устаревшая ссылка).
// В зачёт идут только раунды с номером <= SwissRounds. Бай (матч без второго
// игрока) даёт победу и три очка, но соперником не считается и в Бухгольц
// не попадает. Несыгранный матч не даёт ничего.
func Calculate(t *models.Tournament, roster map[int]*models.User) ([]Standing, error) {
	if err := validateRounds(t.Rounds); err != nil {
		return nil, err
	}

	dropped := make(map[int]bool, len(t.DroppedPlayerIDs))
	for _, id := range t.DroppedPlayerIDs {
		dropped[id] = true
	}

	result := make([]Standing, 0, len(t.Participants))

	for _, participantID := range t.Participants {
		user, ok := roster[participantID]
		if !ok {
			continue
		}

		s := Standing{
			ParticipantID: participantID,
			User:          user,
			OpponentIDs:   []int{},
		}

		var dropRound *int
		if dropped[participantID] {
			dropRound = findDropRound(t.Rounds, participantID)
		}

		for _, round := range t.Rounds {
			if round.Number > t.SwissRounds {
				continue
			}
			if dropRound != nil && round.Number >= *dropRound {
				continue
			}

			match := findMatch(round.Matches, participantID)
			if match == nil {
				continue
			}

			if match.Player2ID == nil {
				// Бай: автоматическая победа, соперник не записывается.
				s.Points += winPoints
				s.Wins++
				continue
			}

			opponentID := *match.Player2ID
			wonSide := models.ResultWin1
			if match.Player1ID != participantID {
				opponentID = match.Player1ID
				wonSide = models.ResultWin2
			}
			s.OpponentIDs = append(s.OpponentIDs, opponentID)

			switch match.Result {
			case wonSide:
				s.Points += winPoints
				s.Wins++
			case models.ResultDraw:
				s.Points += drawPoints
				s.Draws++
			case models.ResultPending:
				// Матч ещё не сыгран.
			default:
				s.Losses++
			}
		}

		result = append(result, s)
	}

	applyTiebreaks(result)

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Points != result[j].Points {
			return result[i].Points > result[j].Points
		}
		if result[i].Buchholz != result[j].Buchholz {
			return result[i].Buchholz > result[j].Buchholz
		}
		return result[i].SumBuchholz > result[j].SumBuchholz
	})

	for i := range result {
		result[i].Place = i + 1
	}

	return result, nil
}

func validateRounds(rounds []models.Round) error {
	for _, round := range rounds {
		if round.Number < 1 {
			return fmt.Errorf("round %q has invalid number %d", round.ID, round.Number)
		}
		for _, match := range round.Matches {
			if match.Player1ID == 0 {
				return fmt.Errorf("round %d: match %q has no first player", round.Number, match.ID)
			}
		}
	}
	return nil
}

// findDropRound находит первый раунд, в котором у дропнувшегося участника
// нет матча. Если участник сыграл все сохранённые раунды, точка дропа
// не определяется и участник считается игравшим до конца.
func findDropRound(rounds []models.Round, participantID int) *int {
	for _, round := range rounds {
		if findMatch(round.Matches, participantID) == nil {
			n := round.Number
			return &n
		}
	}
	return nil
}

func findMatch(matches []models.Match, participantID int) *models.Match {
	for i := range matches {
		m := &matches[i]
		if m.Player1ID == participantID {
			return m
		}
		if m.Player2ID != nil && *m.Player2ID == participantID {
			return m
		}
	}
	return nil
}

// applyTiebreaks заполняет Buchholz и SumBuchholz. Оба прохода работают по
// уже финальным значениям предыдущего шага: Бухгольц — по итоговым очкам,
// сумма Бухгольцев — по итоговым Бухгольцам. Соперники, выбывшие из
// таблицы (устаревшие ссылки), дают ноль.
func applyTiebreaks(result []Standing) {
	points := make(map[int]int, len(result))
	for _, s := range result {
		points[s.ParticipantID] = s.Points
	}
	for i := range result {
		for _, oppID := range result[i].OpponentIDs {
			result[i].Buchholz += points[oppID]
		}
	}

	buchholz := make(map[int]int, len(result))
	for _, s := range result {
		buchholz[s.ParticipantID] = s.Buchholz
	}
	for i := range result {
		for _, oppID := range result[i].OpponentIDs {
			result[i].SumBuchholz += buchholz[oppID]
		}
	}
}
