package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/pr-poehali-dev/tournament-site-builder/models"
	"github.com/pr-poehali-dev/tournament-site-builder/rating"
	"github.com/pr-poehali-dev/tournament-site-builder/repositories"
)

// Ручные фейки репозиториев: сервисы зависят только от интерфейсов,
// поэтому тестируются без *sql.DB.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users map[int]*models.User

	listErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[int]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = len(r.users) + 1
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SetAvatarKey(_ context.Context, id int, key *string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.AvatarKey = key
	return nil
}

func (r *fakeUserRepo) GetRatings(_ context.Context, ids []int) (map[int]int, error) {
	ratings := make(map[int]int)
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			ratings[id] = user.Rating
		}
	}
	return ratings, nil
}

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = len(r.tournaments) + 1
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return t, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, _, _ int) ([]*models.Tournament, error) {
	tournaments := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[t.ID] = t
	return nil
}

func (r *fakeTournamentRepo) DeleteCascade(_ context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeGameRepo struct {
	games []*models.Game

	createdBatches [][]*models.Game
	savedChanges   []rating.Change
	resultUpdates  map[int]models.MatchResult
}

func newFakeGameRepo(games ...*models.Game) *fakeGameRepo {
	return &fakeGameRepo{
		games:         games,
		resultUpdates: make(map[int]models.MatchResult),
	}
}

func (r *fakeGameRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Game, error) {
	games := make([]*models.Game, 0, len(r.games))
	for _, g := range r.games {
		if g.TournamentID == tournamentID {
			games = append(games, g)
		}
	}
	return games, nil
}

func (r *fakeGameRepo) CreateBatch(_ context.Context, games []*models.Game) error {
	r.createdBatches = append(r.createdBatches, games)
	r.games = append(r.games, games...)
	return nil
}

func (r *fakeGameRepo) UpdateResult(_ context.Context, gameID int, result models.MatchResult) error {
	for _, g := range r.games {
		if g.ID == gameID {
			g.Result = result
			r.resultUpdates[gameID] = result
			return nil
		}
	}
	return repositories.ErrGameNotFound
}

func (r *fakeGameRepo) UpdateRatingChanges(_ context.Context, changes []rating.Change) error {
	r.savedChanges = changes
	return nil
}

type fakeResultRepo struct {
	saved map[int][]*models.TournamentResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{saved: make(map[int][]*models.TournamentResult)}
}

func (r *fakeResultRepo) ReplaceForTournament(_ context.Context, tournamentID int, results []*models.TournamentResult) error {
	r.saved[tournamentID] = results
	return nil
}

func (r *fakeResultRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.TournamentResult, error) {
	return r.saved[tournamentID], nil
}

func (r *fakeResultRepo) ListAll(_ context.Context) ([]*models.TournamentResult, error) {
	all := make([]*models.TournamentResult, 0)
	for _, results := range r.saved {
		all = append(all, results...)
	}
	return all, nil
}
