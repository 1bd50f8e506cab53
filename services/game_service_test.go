package services

import (
	"context"
	"testing"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_CreatePairings(t *testing.T) {
	gameRepo := newFakeGameRepo()
	svc := NewGameService(gameRepo)

	pairings := []Pairing{
		{Player1ID: 10, Player2ID: intPtr(20)},
		{Player1ID: 30}, // бай
		{Player1ID: 0},  // пустой слот сетки, пропускается
	}

	games, err := svc.CreatePairings(context.Background(), 1, 2, pairings)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, 1, games[0].TournamentID)
	assert.Equal(t, 2, games[0].RoundNumber)
	assert.Equal(t, models.ResultPending, games[0].Result)
	assert.False(t, games[0].IsBye)

	assert.True(t, games[1].IsBye)
	assert.Nil(t, games[1].Player2ID)

	require.Len(t, gameRepo.createdBatches, 1)
}

func TestGameService_CreatePairingsEmpty(t *testing.T) {
	svc := NewGameService(newFakeGameRepo())

	_, err := svc.CreatePairings(context.Background(), 1, 1, nil)
	assert.ErrorIs(t, err, ErrPairingsRequired)

	// Одни пустые слоты — то же самое, что пустой раунд.
	_, err = svc.CreatePairings(context.Background(), 1, 1, []Pairing{{Player1ID: 0}})
	assert.ErrorIs(t, err, ErrPairingsRequired)
}

func TestGameService_SetResult(t *testing.T) {
	gameRepo := newFakeGameRepo(
		&models.Game{ID: 5, TournamentID: 1, Player1ID: 10, Player2ID: intPtr(20)},
	)
	svc := NewGameService(gameRepo)

	err := svc.SetResult(context.Background(), 5, models.ResultWin2)
	require.NoError(t, err)
	assert.Equal(t, models.ResultWin2, gameRepo.resultUpdates[5])
}

func TestGameService_SetResultValidation(t *testing.T) {
	svc := NewGameService(newFakeGameRepo())

	// Снять результат через этот метод нельзя.
	err := svc.SetResult(context.Background(), 5, models.ResultPending)
	assert.ErrorIs(t, err, ErrResultRequired)

	err = svc.SetResult(context.Background(), 404, models.ResultWin1)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
