package services

import (
	"context"
	"testing"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestResultService_Recalculate(t *testing.T) {
	tournament := &models.Tournament{
		ID:           1,
		Participants: []int{10, 20, 30},
		SwissRounds:  2,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 10, Player2ID: intPtr(20), Result: models.ResultWin1},
				{Player1ID: 30, Player2ID: nil},
			}},
			{Number: 2, Matches: []models.Match{
				{Player1ID: 10, Player2ID: intPtr(30), Result: models.ResultWin1},
				{Player1ID: 20, Player2ID: nil},
			}},
		},
	}
	userRepo := newFakeUserRepo(
		&models.User{ID: 10, Username: "alpha"},
		&models.User{ID: 20, Username: "beta"},
		&models.User{ID: 30, Username: "gamma"},
	)
	resultRepo := newFakeResultRepo()

	svc := NewResultService(newFakeTournamentRepo(tournament), userRepo, resultRepo, nil, discardLogger())

	saved, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, saved)

	results := resultRepo.saved[1]
	require.Len(t, results, 3)

	// Таблица сохраняется уже отсортированной, места — с первого.
	assert.Equal(t, 10, results[0].PlayerID)
	assert.Equal(t, 1, results[0].Place)
	assert.Equal(t, 6, results[0].Points)
	assert.Equal(t, 2, results[0].Wins)

	for i, r := range results {
		assert.Equal(t, i+1, r.Place)
		assert.Equal(t, 1, r.TournamentID)
	}
}

func TestResultService_RecalculateTournamentNotFound(t *testing.T) {
	svc := NewResultService(newFakeTournamentRepo(), newFakeUserRepo(), newFakeResultRepo(), nil, discardLogger())

	_, err := svc.Recalculate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestResultService_RecalculateMalformedRounds(t *testing.T) {
	tournament := &models.Tournament{
		ID:           1,
		Participants: []int{10},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 0, Matches: []models.Match{{Player1ID: 10}}},
		},
	}
	svc := NewResultService(
		newFakeTournamentRepo(tournament),
		newFakeUserRepo(&models.User{ID: 10}),
		newFakeResultRepo(),
		nil,
		discardLogger(),
	)

	_, err := svc.Recalculate(context.Background(), 1)
	assert.ErrorIs(t, err, ErrMalformedTournamentData)
}

func TestResultService_RecalculateOverwritesPreviousTable(t *testing.T) {
	tournament := &models.Tournament{
		ID:           1,
		Participants: []int{10, 20},
		SwissRounds:  1,
		Rounds: []models.Round{
			{Number: 1, Matches: []models.Match{
				{Player1ID: 10, Player2ID: intPtr(20), Result: models.ResultWin1},
			}},
		},
	}
	userRepo := newFakeUserRepo(&models.User{ID: 10}, &models.User{ID: 20})
	resultRepo := newFakeResultRepo()
	svc := NewResultService(newFakeTournamentRepo(tournament), userRepo, resultRepo, nil, discardLogger())

	_, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)

	// Результат изменился: после пересчёта таблица заменяется целиком.
	tournament.Rounds[0].Matches[0].Result = models.ResultWin2
	saved, err := svc.Recalculate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	results := resultRepo.saved[1]
	require.Len(t, results, 2)
	assert.Equal(t, 20, results[0].PlayerID)
	assert.Equal(t, 3, results[0].Points)
}

func TestResultService_ListByTournament(t *testing.T) {
	resultRepo := newFakeResultRepo()
	resultRepo.saved[7] = []*models.TournamentResult{
		{TournamentID: 7, PlayerID: 10, Place: 1},
	}
	svc := NewResultService(newFakeTournamentRepo(), newFakeUserRepo(), resultRepo, nil, discardLogger())

	results, err := svc.ListByTournament(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 10, results[0].PlayerID)
}
