package standings

import (
	"testing"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func makeRoster(ids ...int) map[int]*models.User {
	roster := make(map[int]*models.User, len(ids))
	for _, id := range ids {
		roster[id] = &models.User{ID: id, Role: models.RolePlayer, IsActive: true}
	}
	return roster
}

func standingOf(t *testing.T, table []Standing, participantID int) Standing {
	t.Helper()
	for _, s := range table {
		if s.ParticipantID == participantID {
			return s
		}
	}
	t.Fatalf("participant %d not found in standings", participantID)
	return Standing{}
}

func TestCalculate_PointsAndRecord(t *testing.T) {
	// Раунд 1: 1 побеждает 2, 3 и 4 играют вничью.
	// Раунд 2: 1 побеждает 3, 2 побеждает 4.
	tournament := &models.Tournament{
		Participants: []int{1, 2, 3, 4},
		SwissRounds:  2,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin1},
				{Player1ID: 3, Player2ID: intPtr(4), Result: models.ResultDraw},
			}},
			{Number: 2, Matches: []models.Match{
				{Player1ID: 3, Player2ID: intPtr(1), Result: models.ResultWin2},
				{Player1ID: 2, Player2ID: intPtr(4), Result: models.ResultWin1},
			}},
		},
	}

	table, err := Calculate(tournament, makeRoster(1, 2, 3, 4))
	require.NoError(t, err)
	require.Len(t, table, 4)

	p1 := standingOf(t, table, 1)
	assert.Equal(t, 6, p1.Points)
	assert.Equal(t, 2, p1.Wins)
	assert.Equal(t, 0, p1.Losses)
	assert.Equal(t, 0, p1.Draws)

	p2 := standingOf(t, table, 2)
	assert.Equal(t, 3, p2.Points)
	assert.Equal(t, 1, p2.Wins)
	assert.Equal(t, 1, p2.Losses)

	p3 := standingOf(t, table, 3)
	assert.Equal(t, 1, p3.Points)
	assert.Equal(t, 1, p3.Draws)
	assert.Equal(t, 1, p3.Losses)

	p4 := standingOf(t, table, 4)
	assert.Equal(t, 1, p4.Points)
	assert.Equal(t, 1, p4.Draws)
	assert.Equal(t, 1, p4.Losses)

	assert.Equal(t, 1, p1.Place)
	assert.Equal(t, 2, p2.Place)
}

func TestCalculate_ByeGivesWinWithoutOpponent(t *testing.T) {
	tournament := &models.Tournament{
		Participants: []int{1, 2, 3},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin1},
				{Player1ID: 3, Player2ID: nil},
			}},
		},
	}

	table, err := Calculate(tournament, makeRoster(1, 2, 3))
	require.NoError(t, err)

	p3 := standingOf(t, table, 3)
	assert.Equal(t, 3, p3.Points)
	assert.Equal(t, 1, p3.Wins)
	assert.Empty(t, p3.OpponentIDs, "бай не должен записывать соперника")
	assert.Equal(t, 0, p3.Buchholz, "бай не участвует в Бухгольце")
}

func TestCalculate_BuchholzUsesFinalPoints(t *testing.T) {
	// 1 обыграл 2 и 3. У 1 Бухгольц равен сумме итоговых очков 2 и 3,
	// включая очки, набранные ими в других раундах.
	tournament := &models.Tournament{
		Participants: []int{1, 2, 3, 4},
		SwissRounds:  2,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin1},
				{Player1ID: 3, Player2ID: intPtr(4), Result: models.ResultWin1},
			}},
			{Number: 2, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(3), Result: models.ResultWin1},
				{Player1ID: 2, Player2ID: intPtr(4), Result: models.ResultWin1},
			}},
		},
	}

	table, err := Calculate(tournament, makeRoster(1, 2, 3, 4))
	require.NoError(t, err)

	p1 := standingOf(t, table, 1)
	p2 := standingOf(t, table, 2)
	p3 := standingOf(t, table, 3)
	p4 := standingOf(t, table, 4)

	require.Equal(t, 6, p1.Points)
	require.Equal(t, 3, p2.Points)
	require.Equal(t, 3, p3.Points)
	require.Equal(t, 0, p4.Points)

	assert.Equal(t, 6, p1.Buchholz) // соперники 2 (3 очка) и 3 (3 очка)
	assert.Equal(t, 6, p2.Buchholz) // соперники 1 (6) и 4 (0)
	assert.Equal(t, 6, p4.Buchholz) // соперники 3 (3) и 2 (3)

	// Сумма Бухгольцев считается по уже финальным Бухгольцам соперников.
	assert.Equal(t, p2.Buchholz+p3.Buchholz, p1.SumBuchholz)
}

func TestCalculate_DroppedPlayerStopsAtDropRound(t *testing.T) {
	// Участник 4 дропнулся: в раунде 2 матча у него нет. Очки раунда 1
	// остаются, раунды начиная со 2-го в зачёт не идут.
	tournament := &models.Tournament{
		Participants:     []int{1, 2, 3, 4},
		DroppedPlayerIDs: []int{4},
		SwissRounds:      3,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 4, Player2ID: intPtr(1), Result: models.ResultWin1},
				{Player1ID: 2, Player2ID: intPtr(3), Result: models.ResultDraw},
			}},
			{Number: 2, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin1},
				{Player1ID: 3, Player2ID: nil},
			}},
			{Number: 3, Matches: []models.Match{
				// Матч записан, но точка дропа уже пройдена.
				{Player1ID: 4, Player2ID: intPtr(3), Result: models.ResultWin1},
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultDraw},
			}},
		},
	}

	table, err := Calculate(tournament, makeRoster(1, 2, 3, 4))
	require.NoError(t, err)

	p4 := standingOf(t, table, 4)
	assert.Equal(t, 3, p4.Points, "после точки дропа очки не начисляются")
	assert.Equal(t, 1, p4.Wins)
	assert.Equal(t, []int{1}, p4.OpponentIDs)
}

func TestCalculate_DroppedPlayerWithFullHistoryCountsEverything(t *testing.T) {
	// Участник помечен дропнувшимся, но матч есть в каждом раунде:
	// точка дропа не определяется, история засчитывается целиком.
	tournament := &models.Tournament{
		Participants:     []int{1, 2},
		DroppedPlayerIDs: []int{2},
		SwissRounds:      2,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin2},
			}},
			{Number: 2, Matches: []models.Match{
				{Player1ID: 2, Player2ID: intPtr(1), Result: models.ResultDraw},
			}},
		},
	}

	table, err := Calculate(tournament, makeRoster(1, 2))
	require.NoError(t, err)

	p2 := standingOf(t, table, 2)
	assert.Equal(t, 4, p2.Points)
	assert.Equal(t, 1, p2.Wins)
	assert.Equal(t, 1, p2.Draws)
}

func TestCalculate_PendingMatchGivesNothing(t *testing.T) {
	tournament := &models.Tournament{
		Participants: []int{1, 2},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultPending},
			}},
		},
	}

	table, err := Calculate(tournament, makeRoster(1, 2))
	require.NoError(t, err)

	p1 := standingOf(t, table, 1)
	assert.Equal(t, 0, p1.Points)
	assert.Equal(t, 0, p1.Wins+p1.Losses+p1.Draws)
	// Соперник записан: пара состоялась, даже если результата ещё нет.
	assert.Equal(t, []int{2}, p1.OpponentIDs)
}

func TestCalculate_RoundsBeyondSwissAreIgnored(t *testing.T) {
	tournament := &models.Tournament{
		Participants: []int{1, 2},
		SwissRounds:  1,
		TopRounds:    1,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin1},
			}},
			// Плей-офф: в швейцарскую таблицу не входит.
			{Number: 2, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin2},
			}},
		},
	}

	table, err := Calculate(tournament, makeRoster(1, 2))
	require.NoError(t, err)

	p2 := standingOf(t, table, 2)
	assert.Equal(t, 0, p2.Points)
	assert.Equal(t, 0, p2.Wins)
}

func TestCalculate_StaleRosterReferenceSkipped(t *testing.T) {
	tournament := &models.Tournament{
		Participants: []int{1, 99},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(99), Result: models.ResultWin2},
			}},
		},
	}

	// Пользователя 99 в ростере нет: строка для него не создаётся,
	// а как соперник он даёт ноль в Бухгольц.
	table, err := Calculate(tournament, makeRoster(1))
	require.NoError(t, err)
	require.Len(t, table, 1)

	p1 := table[0]
	assert.Equal(t, 1, p1.ParticipantID)
	assert.Equal(t, 1, p1.Losses)
	assert.Equal(t, 0, p1.Buchholz)
}

func TestCalculate_TieOrderIsStable(t *testing.T) {
	// Полный тай по всем трём ключам: порядок из Participants сохраняется.
	tournament := &models.Tournament{
		Participants: []int{7, 3, 5},
		SwissRounds:  1,
		Rounds:       []models.Round{},
	}

	table, err := Calculate(tournament, makeRoster(3, 5, 7))
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, 7, table[0].ParticipantID)
	assert.Equal(t, 3, table[1].ParticipantID)
	assert.Equal(t, 5, table[2].ParticipantID)
	assert.Equal(t, []int{1, 2, 3}, []int{table[0].Place, table[1].Place, table[2].Place})
}

func TestCalculate_MalformedRoundsRejected(t *testing.T) {
	roster := makeRoster(1, 2)

	_, err := Calculate(&models.Tournament{
		Participants: []int{1, 2},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 0, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin1},
			}},
		},
	}, roster)
	assert.Error(t, err)

	_, err = Calculate(&models.Tournament{
		Participants: []int{1, 2},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 0, Player2ID: intPtr(2)},
			}},
		},
	}, roster)
	assert.Error(t, err)
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	tournament := &models.Tournament{
		Participants: []int{1, 2},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 1, Player2ID: intPtr(2), Result: models.ResultWin1},
			}},
		},
	}
	roster := makeRoster(1, 2)

	first, err := Calculate(tournament, roster)
	require.NoError(t, err)
	second, err := Calculate(tournament, roster)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
