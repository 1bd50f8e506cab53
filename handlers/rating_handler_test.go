package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pr-poehali-dev/tournament-site-builder/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRatingService struct {
	recalculateFn func(ctx context.Context, tournamentID int) (int, error)
}

func (s *stubRatingService) Recalculate(ctx context.Context, tournamentID int) (int, error) {
	return s.recalculateFn(ctx, tournamentID)
}

func TestRatingHandler_Recalculate(t *testing.T) {
	handler := NewRatingHandler(&stubRatingService{
		recalculateFn: func(_ context.Context, tournamentID int) (int, error) {
			assert.Equal(t, 3, tournamentID)
			return 8, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ratings/recalculate", strings.NewReader(`{"tournament_id":3}`))
	rec := httptest.NewRecorder()
	handler.Recalculate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(8), body["updated_games"])
}

func TestRatingHandler_RecalculateMissingID(t *testing.T) {
	handler := NewRatingHandler(&stubRatingService{})

	req := httptest.NewRequest(http.MethodPost, "/ratings/recalculate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.Recalculate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRatingHandler_RecalculateNoGames(t *testing.T) {
	handler := NewRatingHandler(&stubRatingService{
		recalculateFn: func(_ context.Context, _ int) (int, error) {
			return 0, services.ErrNoGamesFound
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ratings/recalculate", strings.NewReader(`{"tournament_id":3}`))
	rec := httptest.NewRecorder()
	handler.Recalculate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRatingHandler_RecalculateBadJSON(t *testing.T) {
	handler := NewRatingHandler(&stubRatingService{})

	req := httptest.NewRequest(http.MethodPost, "/ratings/recalculate", strings.NewReader(`{"tournament_id":`))
	rec := httptest.NewRecorder()
	handler.Recalculate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
