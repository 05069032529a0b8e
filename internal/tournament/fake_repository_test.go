package tournament

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
)

// fakeRepository is an in-memory repository.Tournament that stores deep copies
type fakeRepository struct {
	mu          sync.Mutex
	tournaments map[uuid.UUID]*domain.Tournament
	saves       int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tournaments: make(map[uuid.UUID]*domain.Tournament)}
}

func (f *fakeRepository) CreateTournament(ctx context.Context, t *domain.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tournaments[t.ID] = t.Clone()
	return nil
}

func (f *fakeRepository) GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, id)
	}
	return t.Clone(), nil
}

func (f *fakeRepository) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		out = append(out, domain.Tournament{ID: t.ID, Name: t.Name, Finished: t.Finished, CreatedAt: t.CreatedAt})
	}
	return out, nil
}

func (f *fakeRepository) ListRounds(ctx context.Context, id uuid.UUID) ([]domain.Round, error) {
	t, err := f.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Rounds, nil
}

func (f *fakeRepository) SaveTournament(ctx context.Context, t *domain.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tournaments[t.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, t.ID)
	}
	f.tournaments[t.ID] = t.Clone()
	f.saves++
	return nil
}

func (f *fakeRepository) stored(id uuid.UUID) *domain.Tournament {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tournaments[id].Clone()
}

// MockRepository is a testify mock of repository.Tournament
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTournament(ctx context.Context, t *domain.Tournament) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRepository) GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tournament), args.Error(1)
}

func (m *MockRepository) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tournament), args.Error(1)
}

func (m *MockRepository) ListRounds(ctx context.Context, id uuid.UUID) ([]domain.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Round), args.Error(1)
}

func (m *MockRepository) SaveTournament(ctx context.Context, t *domain.Tournament) error {
	return m.Called(ctx, t).Error(0)
}

// staticPlayers resolves names from a fixed map
type staticPlayers map[string]domain.Player

func (s staticPlayers) Players(ctx context.Context, ids []string) (map[string]domain.Player, error) {
	out := make(map[string]domain.Player, len(ids))
	for _, id := range ids {
		if p, ok := s[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// heldRepository lets the first GetTournament read its result and then wait
// until released, simulating a slow load that overlaps a writer.
type heldRepository struct {
	*fakeRepository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newHeldRepository(inner *fakeRepository) *heldRepository {
	return &heldRepository{
		fakeRepository: inner,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (h *heldRepository) GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	t, err := h.fakeRepository.GetTournament(ctx, id)
	held := false
	h.once.Do(func() { held = true })
	if held {
		close(h.entered)
		<-h.release
	}
	return t, err
}

// failingPlayers returns what it knows together with a lookup error
type failingPlayers struct {
	known staticPlayers
	err   error
}

func (f failingPlayers) Players(ctx context.Context, ids []string) (map[string]domain.Player, error) {
	out, _ := f.known.Players(ctx, ids)
	return out, f.err
}
