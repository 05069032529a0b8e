package tournament

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/osse101/GrandChallenge_Go/internal/bracket"
	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/event"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	svc    Service
	repo   *fakeRepository
	bus    *event.MemoryBus
	events []event.Type
	mu     sync.Mutex
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{repo: newFakeRepository(), bus: event.NewMemoryBus()}
	h.bus.SubscribeAll(func(ctx context.Context, evt event.Event) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.events = append(h.events, evt.Type)
		return nil
	},
		event.TournamentCreated, event.TournamentStarted, event.TournamentFinished, event.TournamentReset,
		event.RoundAdvanced, event.RoundClosed, event.ResultRecorded)

	engine := bracket.NewEngine(bracket.DefaultConfig())
	svc, err := NewService(h.repo, engine, h.bus, NewViewBuilder(engine, nil, "en"), 16)
	require.NoError(t, err)
	h.svc = svc
	return h
}

func (h *harness) create(t *testing.T) uuid.UUID {
	t.Helper()
	tour, err := h.svc.Create(context.Background(), "GrandChallenge")
	require.NoError(t, err)
	return tour.ID
}

func (h *harness) seen() []event.Type {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]event.Type(nil), h.events...)
}

// record plays every challenge of the current round with the given winners in position order
func (h *harness) record(t *testing.T, id uuid.UUID, winners ...string) {
	t.Helper()
	ctx := context.Background()
	round, err := h.svc.GetCurrentRound(ctx, id)
	require.NoError(t, err)
	require.Len(t, round.Challenges, len(winners))
	for i, c := range round.Challenges {
		_, err := h.svc.RecordResult(ctx, id, c.ID, winners[i])
		require.NoError(t, err)
	}
}

func losses(t *testing.T, svc Service, id uuid.UUID) map[string]int {
	t.Helper()
	tour, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	return tour.Losses()
}

func TestCreate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tour, err := h.svc.Create(ctx, "  Spring Cup  ")
	require.NoError(t, err)
	assert.Equal(t, "Spring Cup", tour.Name)
	assert.False(t, tour.Finished)
	assert.Empty(t, tour.Rounds)

	_, err = h.svc.Create(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := h.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, []event.Type{event.TournamentCreated}, h.seen())
}

func TestStart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)

	round, err := h.svc.Start(ctx, id, []string{"A", "B", "A", " ", "C", "D"})
	require.NoError(t, err)

	assert.Equal(t, 0, round.Number)
	assert.Empty(t, round.Challenges)
	assert.Equal(t, []string{"A", "B", "C", "D"}, round.ParticipantIDs())

	tour, err := h.svc.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, tour.Participants, 4)
	for i, p := range tour.Participants {
		assert.Equal(t, i, p.Seed)
		assert.Zero(t, p.Losses)
	}

	_, err = h.svc.Start(ctx, id, []string{"E", "F"})
	assert.ErrorIs(t, err, domain.ErrAlreadyStarted)
}

func TestStart_NotEnoughParticipants(t *testing.T) {
	h := newHarness(t)
	id := h.create(t)

	_, err := h.svc.Start(context.Background(), id, []string{"A", "A"})

	assert.ErrorIs(t, err, domain.ErrNotEnoughParticipants)
	tour := h.repo.stored(id)
	assert.Empty(t, tour.Rounds)
}

func TestUnknownTournament(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := h.svc.Start(ctx, id, []string{"A", "B"})
	assert.ErrorIs(t, err, domain.ErrTournamentNotFound)
	_, err = h.svc.Dashboard(ctx, id)
	assert.ErrorIs(t, err, domain.ErrTournamentNotFound)
	_, err = h.svc.IsFinished(ctx, id)
	assert.ErrorIs(t, err, domain.ErrTournamentNotFound)
}

func TestOperationsBeforeStart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)

	_, err := h.svc.AdvanceRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotStarted)

	_, err = h.svc.CloseRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotStarted)

	_, err = h.svc.GetCurrentRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotStarted)

	rounds, err := h.svc.GetRounds(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, rounds)

	finished, err := h.svc.IsFinished(ctx, id)
	require.NoError(t, err)
	assert.False(t, finished)
}

func TestFourPlayerScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)

	_, err := h.svc.Start(ctx, id, []string{"A", "B", "C", "D"})
	require.NoError(t, err)

	r1, err := h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Number)
	require.Len(t, r1.Challenges, 2)
	assert.Equal(t, [2]string{"A", "B"}, [2]string{r1.Challenges[0].UserFrom, r1.Challenges[0].UserTo})
	assert.Equal(t, [2]string{"C", "D"}, [2]string{r1.Challenges[1].UserFrom, r1.Challenges[1].UserTo})
	assert.Equal(t, domain.BranchWin, r1.Challenges[0].Branch)
	assert.Equal(t, domain.BranchWin, r1.Challenges[1].Branch)

	h.record(t, id, "A", "C")
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 0, "D": 1}, losses(t, h.svc, id))

	r2, err := h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)
	require.Len(t, r2.Challenges, 2)
	assert.Equal(t, domain.BranchWin, r2.Challenges[0].Branch)
	assert.Equal(t, [2]string{"A", "C"}, [2]string{r2.Challenges[0].UserFrom, r2.Challenges[0].UserTo})
	assert.Equal(t, domain.BranchLoss, r2.Challenges[1].Branch)
	assert.Equal(t, [2]string{"B", "D"}, [2]string{r2.Challenges[1].UserFrom, r2.Challenges[1].UserTo})

	h.record(t, id, "A", "B")
	assert.Equal(t, 2, losses(t, h.svc, id)["D"])

	r3, err := h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, r3.ParticipantIDs(), "D")
	for _, c := range r3.Challenges {
		assert.False(t, c.Involves("D"), "eliminated participant paired again")
	}

	// play it out: the lower seed always wins
	for i := 0; i < bracket.DefaultLastFinalRound; i++ {
		current, err := h.svc.GetCurrentRound(ctx, id)
		require.NoError(t, err)
		winners := make([]string, len(current.Challenges))
		for j, c := range current.Challenges {
			winners[j] = c.UserFrom
		}
		h.record(t, id, winners...)

		_, err = h.svc.AdvanceRound(ctx, id)
		if errors.Is(err, domain.ErrTournamentFinished) {
			break
		}
		require.NoError(t, err)
	}

	finished, err := h.svc.IsFinished(ctx, id)
	require.NoError(t, err)
	assert.True(t, finished)

	tour, err := h.svc.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, tour.Champion)
	assert.Equal(t, "A", *tour.Champion)
	assert.True(t, tour.CurrentRound().Closed)

	_, err = h.svc.AdvanceRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrTournamentFinished)

	// closing the already closed final round is a no-op
	_, err = h.svc.CloseRound(ctx, id)
	assert.NoError(t, err)

	assert.Contains(t, h.seen(), event.TournamentFinished)
}

func TestRoundsAreContiguous(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)

	_, err := h.svc.Start(ctx, id, []string{"A", "B", "C", "D", "E", "F"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := h.svc.AdvanceRound(ctx, id)
		require.NoError(t, err)
		current, err := h.svc.GetCurrentRound(ctx, id)
		require.NoError(t, err)
		winners := make([]string, len(current.Challenges))
		for j, c := range current.Challenges {
			winners[j] = c.UserTo
		}
		h.record(t, id, winners...)
	}

	rounds, err := h.svc.GetRounds(ctx, id)
	require.NoError(t, err)
	for i, r := range rounds {
		assert.Equal(t, i, r.Number)
	}
	for _, r := range rounds[:len(rounds)-1] {
		assert.True(t, r.Closed, "round %d should be closed", r.Number)
	}
}

func TestRecordResult(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)
	_, err := h.svc.Start(ctx, id, []string{"A", "B", "C", "D"})
	require.NoError(t, err)
	r1, err := h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)
	c := r1.Challenges[0]

	t.Run("invalid winner changes nothing", func(t *testing.T) {
		_, err := h.svc.RecordResult(ctx, id, c.ID, "C")
		assert.ErrorIs(t, err, domain.ErrInvalidWinner)
		assert.Equal(t, map[string]int{"A": 0, "B": 0, "C": 0, "D": 0}, losses(t, h.svc, id))
		current, err := h.svc.GetCurrentRound(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, current.Challenges[0].Winner)
		assert.Equal(t, domain.ChallengeStatusScheduled, current.Challenges[0].Status)
	})

	t.Run("unknown challenge", func(t *testing.T) {
		_, err := h.svc.RecordResult(ctx, id, uuid.New(), "A")
		assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
	})

	t.Run("records winner and one loss", func(t *testing.T) {
		got, err := h.svc.RecordResult(ctx, id, c.ID, "B")
		require.NoError(t, err)
		require.NotNil(t, got.Winner)
		assert.Equal(t, "B", *got.Winner)
		assert.Equal(t, domain.ChallengeStatusPlayed, got.Status)
		assert.NotNil(t, got.PlayedAt)
		assert.Equal(t, 1, losses(t, h.svc, id)["A"])
	})

	t.Run("same winner again is a no-op", func(t *testing.T) {
		saves := h.repo.saves
		_, err := h.svc.RecordResult(ctx, id, c.ID, "B")
		require.NoError(t, err)
		assert.Equal(t, 1, losses(t, h.svc, id)["A"])
		assert.Equal(t, saves, h.repo.saves)
	})

	t.Run("different winner is rejected", func(t *testing.T) {
		_, err := h.svc.RecordResult(ctx, id, c.ID, "A")
		assert.ErrorIs(t, err, domain.ErrAlreadyPlayed)
		assert.Equal(t, 0, losses(t, h.svc, id)["B"])
	})
}

func TestCloseRound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)
	_, err := h.svc.Start(ctx, id, []string{"A", "B", "C", "D"})
	require.NoError(t, err)
	r1, err := h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)

	_, err = h.svc.RecordResult(ctx, id, r1.Challenges[0].ID, "A")
	require.NoError(t, err)

	_, err = h.svc.CloseRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrResultMissing)
	_, err = h.svc.AdvanceRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrResultMissing)

	current, err := h.svc.GetCurrentRound(ctx, id)
	require.NoError(t, err)
	assert.False(t, current.Closed)
	assert.Equal(t, 1, current.Number)

	_, err = h.svc.RecordResult(ctx, id, r1.Challenges[1].ID, "D")
	require.NoError(t, err)

	closed, err := h.svc.CloseRound(ctx, id)
	require.NoError(t, err)
	assert.True(t, closed.Closed)
	for _, c := range closed.Challenges {
		assert.Equal(t, domain.ChallengeStatusPlayed, c.Status)
	}

	again, err := h.svc.CloseRound(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, closed.Number, again.Number)

	// advancing after an explicit close does not close twice
	next, err := h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Number)
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)
	_, err := h.svc.Start(ctx, id, []string{"A", "B"})
	require.NoError(t, err)
	_, err = h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)
	h.record(t, id, "A")

	require.NoError(t, h.svc.Reset(ctx, id))

	tour, err := h.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, tour.Rounds)
	assert.Empty(t, tour.Participants)
	assert.False(t, tour.Finished)
	assert.Nil(t, tour.Champion)
	assert.Empty(t, h.repo.stored(id).Rounds)

	_, err = h.svc.GetCurrentRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotStarted)

	// reset on a fresh tournament also succeeds
	require.NoError(t, h.svc.Reset(ctx, id))

	_, err = h.svc.Start(ctx, id, []string{"C", "D"})
	assert.NoError(t, err)
}

func TestTwoPlayerTournamentFinishesOnAdvance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)
	_, err := h.svc.Start(ctx, id, []string{"A", "B"})
	require.NoError(t, err)

	for _, winner := range []string{"B", "A", "A"} {
		_, err := h.svc.AdvanceRound(ctx, id)
		require.NoError(t, err)
		h.record(t, id, winner)
	}

	_, err = h.svc.AdvanceRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrTournamentFinished)

	// the close that decided the tournament was persisted
	stored := h.repo.stored(id)
	assert.True(t, stored.Finished)
	require.NotNil(t, stored.Champion)
	assert.Equal(t, "A", *stored.Champion)
	assert.True(t, stored.CurrentRound().Closed)
}

func TestConcurrentRecordResultCountsLossOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)
	_, err := h.svc.Start(ctx, id, []string{"A", "B"})
	require.NoError(t, err)
	r1, err := h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.RecordResult(ctx, id, r1.Challenges[0].ID, "A")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, losses(t, h.svc, id)["B"])
}

func TestReadersGetPrivateCopies(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)
	_, err := h.svc.Start(ctx, id, []string{"A", "B"})
	require.NoError(t, err)

	round, err := h.svc.GetCurrentRound(ctx, id)
	require.NoError(t, err)
	round.Standings[0].ParticipantID = "mallory"

	again, err := h.svc.GetCurrentRound(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Standings[0].ParticipantID)
}

func TestSaveFailureLeavesSnapshotUntouched(t *testing.T) {
	repo := new(MockRepository)
	engine := bracket.NewEngine(bracket.DefaultConfig())
	svc, err := NewService(repo, engine, nil, NewViewBuilder(engine, nil, "en"), 0)
	require.NoError(t, err)
	ctx := context.Background()

	id := uuid.New()
	repo.On("GetTournament", ctx, id).Return(&domain.Tournament{ID: id, Name: "t"}, nil).Once()
	repo.On("SaveTournament", ctx, mock.AnythingOfType("*domain.Tournament")).Return(errors.New("connection reset")).Once()

	_, err = svc.Start(ctx, id, []string{"A", "B"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, err = svc.GetCurrentRound(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotStarted)
	repo.AssertExpectations(t)
}

func TestGetRounds_CacheMissUsesListRounds(t *testing.T) {
	repo := new(MockRepository)
	engine := bracket.NewEngine(bracket.DefaultConfig())
	svc, err := NewService(repo, engine, nil, NewViewBuilder(engine, nil, "en"), 0)
	require.NoError(t, err)
	ctx := context.Background()
	id := uuid.New()

	repo.On("ListRounds", ctx, id).Return([]domain.Round{{Number: 0}}, nil).Once()

	rounds, err := svc.GetRounds(ctx, id)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)
	repo.AssertNotCalled(t, "GetTournament", mock.Anything, mock.Anything)
}

func TestEventsFollowLifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.create(t)
	_, err := h.svc.Start(ctx, id, []string{"A", "B"})
	require.NoError(t, err)
	_, err = h.svc.AdvanceRound(ctx, id)
	require.NoError(t, err)
	h.record(t, id, "A")
	require.NoError(t, h.svc.Reset(ctx, id))

	assert.Equal(t, []event.Type{
		event.TournamentCreated,
		event.TournamentStarted,
		event.RoundClosed,
		event.RoundAdvanced,
		event.ResultRecorded,
		event.TournamentReset,
	}, h.seen())
}

func TestColdCacheReaderCannotOverwriteCommittedWrite(t *testing.T) {
	ctx := context.Background()
	inner := newFakeRepository()
	tour := &domain.Tournament{ID: uuid.New(), Name: "cold", Participants: []domain.Participant{}, Rounds: []domain.Round{}}
	require.NoError(t, inner.CreateTournament(ctx, tour))

	repo := newHeldRepository(inner)
	engine := bracket.NewEngine(bracket.DefaultConfig())
	svc, err := NewService(repo, engine, nil, NewViewBuilder(engine, nil, "en"), 16)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var readErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, readErr = svc.GetCurrentRound(ctx, tour.ID)
	}()
	<-repo.entered

	var startErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, startErr = svc.Start(ctx, tour.ID, []string{"A", "B", "C", "D"})
	}()
	close(repo.release)
	wg.Wait()

	assert.ErrorIs(t, readErr, domain.ErrNotStarted)
	require.NoError(t, startErr)

	round, err := svc.GetCurrentRound(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, round.Number)

	_, err = svc.Start(ctx, tour.ID, []string{"X", "Y"})
	assert.ErrorIs(t, err, domain.ErrAlreadyStarted)

	stored := inner.stored(tour.ID)
	require.Len(t, stored.Participants, 4)
	assert.Equal(t, "A", stored.Participants[0].ID)
}
