package tournament

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/GrandChallenge_Go/internal/bracket"
	"github.com/osse101/GrandChallenge_Go/internal/concurrency"
	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/event"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
	"github.com/osse101/GrandChallenge_Go/internal/metrics"
	"github.com/osse101/GrandChallenge_Go/internal/repository"
)

// Service defines the interface for tournament operations
type Service interface {
	Create(ctx context.Context, name string) (*domain.Tournament, error)
	List(ctx context.Context) ([]domain.Tournament, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Tournament, error)

	Start(ctx context.Context, id uuid.UUID, participants []string) (*domain.Round, error)
	AdvanceRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)
	CloseRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)
	RecordResult(ctx context.Context, id, challengeID uuid.UUID, winner string) (*domain.Challenge, error)
	Reset(ctx context.Context, id uuid.UUID) error

	IsFinished(ctx context.Context, id uuid.UUID) (bool, error)
	GetCurrentRound(ctx context.Context, id uuid.UUID) (*domain.Round, error)
	GetRounds(ctx context.Context, id uuid.UUID) ([]domain.Round, error)
	Dashboard(ctx context.Context, id uuid.UUID) (*Dashboard, error)
}

type service struct {
	repo      repository.Tournament
	engine    *bracket.Engine
	locks     *concurrency.LockManager
	snapshots *lru.Cache[uuid.UUID, *domain.Tournament]
	eventBus  event.Bus
	views     *ViewBuilder
	now       func() time.Time
}

// NewService creates a new tournament service. Writers on one tournament are
// serialized; readers are served deep copies of the last committed state.
func NewService(repo repository.Tournament, engine *bracket.Engine, eventBus event.Bus, views *ViewBuilder, snapshotCacheSize int) (Service, error) {
	if snapshotCacheSize <= 0 {
		snapshotCacheSize = DefaultSnapshotCacheSize
	}
	snapshots, err := lru.New[uuid.UUID, *domain.Tournament](snapshotCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot cache: %w", err)
	}
	return &service{
		repo:      repo,
		engine:    engine,
		locks:     concurrency.NewLockManager(),
		snapshots: snapshots,
		eventBus:  eventBus,
		views:     views,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, name string) (*domain.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, s.fail(OpCreate, fmt.Errorf("%w: tournament name must be 1-%d characters", domain.ErrInvalidInput, MaxNameLength))
	}

	now := s.now().UTC()
	t := &domain.Tournament{
		ID:           uuid.New(),
		Name:         name,
		Participants: []domain.Participant{},
		Rounds:       []domain.Round{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateTournament(ctx, t); err != nil {
		return nil, s.fail(OpCreate, fmt.Errorf("failed to create tournament: %w", err))
	}
	s.snapshots.Add(t.ID, t.Clone())

	logger.FromContext(ctx).Info(LogMsgTournamentCreated, "tournament_id", t.ID, "name", t.Name)
	s.publish(ctx, event.NewTournamentEvent(event.TournamentCreated, t.ID, t.Name, 0))
	return t, nil
}

func (s *service) List(ctx context.Context) ([]domain.Tournament, error) {
	return s.repo.ListTournaments(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	return s.snapshot(ctx, id)
}

// Start seeds round 0 with the given participants in order. Duplicate and
// blank ids are dropped.
func (s *service) Start(ctx context.Context, id uuid.UUID, participants []string) (*domain.Round, error) {
	var started domain.Round
	err := s.mutate(ctx, id, OpStart, func(t *domain.Tournament) ([]event.Event, error) {
		if len(t.Rounds) > 0 {
			return nil, domain.ErrAlreadyStarted
		}
		ids := dedupe(participants)
		if len(ids) < 2 {
			return nil, fmt.Errorf("%w: got %d", domain.ErrNotEnoughParticipants, len(ids))
		}

		seed := domain.Round{
			Number:     0,
			Standings:  make([]domain.Standing, 0, len(ids)),
			Challenges: []domain.Challenge{},
			CreatedAt:  s.now().UTC(),
		}
		t.Participants = make([]domain.Participant, 0, len(ids))
		for i, pid := range ids {
			t.Participants = append(t.Participants, domain.Participant{ID: pid, Seed: i})
			seed.Standings = append(seed.Standings, domain.Standing{ParticipantID: pid})
		}
		t.Rounds = []domain.Round{seed}
		started = seed.Clone()

		logger.FromContext(ctx).Info(LogMsgTournamentStarted, "tournament_id", t.ID, "participants", len(ids))
		return []event.Event{event.NewTournamentEvent(event.TournamentStarted, t.ID, t.Name, len(ids))}, nil
	})
	if err != nil {
		return nil, err
	}
	return &started, nil
}

// AdvanceRound closes the current round and materializes the next one.
// When closing decides the tournament, the close is kept and
// ErrTournamentFinished is returned.
func (s *service) AdvanceRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	var next domain.Round
	var finishedOnClose bool
	err := s.mutate(ctx, id, OpAdvanceRound, func(t *domain.Tournament) ([]event.Event, error) {
		current := t.CurrentRound()
		if current == nil {
			return nil, domain.ErrNotStarted
		}
		if t.Finished {
			return nil, domain.ErrTournamentFinished
		}

		events, err := s.close(ctx, t)
		if err != nil {
			return nil, err
		}
		if t.Finished {
			finishedOnClose = true
			return events, nil
		}

		next = s.engine.NextRound(t.ID, t.CurrentRound(), t.Losses())
		next.CreatedAt = s.now().UTC()
		t.Rounds = append(t.Rounds, next)
		next = next.Clone()

		logger.FromContext(ctx).Info(LogMsgRoundAdvanced,
			"tournament_id", t.ID,
			"round", next.Number,
			"challenges", len(next.Challenges),
			"participants", len(next.Standings))
		return append(events, event.NewRoundEvent(event.RoundAdvanced, s.roundPayload(t, &next))), nil
	})
	if err != nil {
		return nil, err
	}
	if finishedOnClose {
		return nil, s.fail(OpAdvanceRound, domain.ErrTournamentFinished)
	}
	return &next, nil
}

func (s *service) CloseRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	var closed domain.Round
	err := s.mutate(ctx, id, OpCloseRound, func(t *domain.Tournament) ([]event.Event, error) {
		if t.CurrentRound() == nil {
			return nil, domain.ErrNotStarted
		}
		events, err := s.close(ctx, t)
		if err != nil {
			return nil, err
		}
		closed = t.CurrentRound().Clone()
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

// close finalizes the current round and evaluates the finish condition.
// It fails without touching t when any challenge lacks a winner.
func (s *service) close(ctx context.Context, t *domain.Tournament) ([]event.Event, error) {
	current := t.CurrentRound()
	if current.Closed {
		return nil, nil
	}

	missing := 0
	for i := range current.Challenges {
		if current.Challenges[i].Winner == nil {
			missing++
		}
	}
	if missing > 0 {
		return nil, fmt.Errorf("%w: %d of %d challenges in round %d", domain.ErrResultMissing, missing, len(current.Challenges), current.Number)
	}

	for i := range current.Challenges {
		current.Challenges[i].Status = domain.ChallengeStatusPlayed
	}
	current.Closed = true

	log := logger.FromContext(ctx)
	log.Info(LogMsgRoundClosed, "tournament_id", t.ID, "round", current.Number)
	events := []event.Event{event.NewRoundEvent(event.RoundClosed, s.roundPayload(t, current))}

	if finished, champion := s.engine.Evaluate(current, t.Losses()); finished {
		t.Finished = true
		t.Champion = champion
		log.Info(LogMsgTournamentOver, "tournament_id", t.ID, "round", current.Number, "champion", champion)
		events = append(events, event.NewTournamentFinishedEvent(t.ID, t.Name, champion, current.Number))
	}
	return events, nil
}

func (s *service) RecordResult(ctx context.Context, id, challengeID uuid.UUID, winner string) (*domain.Challenge, error) {
	var recorded domain.Challenge
	err := s.mutate(ctx, id, OpRecordResult, func(t *domain.Tournament) ([]event.Event, error) {
		round, c := findChallenge(t, challengeID)
		if c == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrChallengeNotFound, challengeID)
		}
		if !c.Involves(winner) {
			return nil, fmt.Errorf("%w: %q is not part of %s vs %s", domain.ErrInvalidWinner, winner, c.UserFrom, c.UserTo)
		}
		if c.Status == domain.ChallengeStatusPlayed || c.Winner != nil {
			if c.Winner != nil && *c.Winner == winner {
				recorded = cloneChallenge(c)
				return nil, errNoChange
			}
			return nil, fmt.Errorf("%w: challenge %s", domain.ErrAlreadyPlayed, challengeID)
		}

		playedAt := s.now().UTC()
		c.Winner = &winner
		c.Status = domain.ChallengeStatusPlayed
		c.PlayedAt = &playedAt

		loser := t.Participant(c.Loser())
		if loser == nil {
			return nil, fmt.Errorf("%w: loser %q is not registered", domain.ErrInvalidInput, c.Loser())
		}
		loser.Losses++
		recorded = cloneChallenge(c)

		eliminated := s.engine.Eliminated(loser.Losses)
		logger.FromContext(ctx).Info(LogMsgResultRecorded,
			"tournament_id", t.ID,
			"round", round.Number,
			"challenge_id", c.ID,
			"winner", winner,
			"loser", loser.ID,
			"eliminated", eliminated)
		return []event.Event{event.NewResultRecordedEvent(event.ResultPayloadV1{
			TournamentID: t.ID,
			ChallengeID:  c.ID,
			RoundNumber:  round.Number,
			Branch:       string(c.Branch),
			Winner:       winner,
			Loser:        loser.ID,
			LoserLosses:  loser.Losses,
			Eliminated:   eliminated,
		})}, nil
	})
	if err != nil {
		return nil, err
	}
	return &recorded, nil
}

func (s *service) Reset(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, id, OpReset, func(t *domain.Tournament) ([]event.Event, error) {
		t.Participants = []domain.Participant{}
		t.Rounds = []domain.Round{}
		t.Finished = false
		t.Champion = nil

		logger.FromContext(ctx).Info(LogMsgTournamentReset, "tournament_id", t.ID)
		return []event.Event{event.NewTournamentEvent(event.TournamentReset, t.ID, t.Name, 0)}, nil
	})
}

func (s *service) IsFinished(ctx context.Context, id uuid.UUID) (bool, error) {
	t, err := s.snapshot(ctx, id)
	if err != nil {
		return false, err
	}
	return t.Finished, nil
}

func (s *service) GetCurrentRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	t, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	current := t.CurrentRound()
	if current == nil {
		return nil, domain.ErrNotStarted
	}
	return current, nil
}

// GetRounds serves from the snapshot cache and falls back to a rounds-only query
func (s *service) GetRounds(ctx context.Context, id uuid.UUID) ([]domain.Round, error) {
	if t, ok := s.snapshots.Get(id); ok {
		metrics.SnapshotCacheLookups.WithLabelValues(metrics.CacheResultHit).Inc()
		return t.Clone().Rounds, nil
	}
	metrics.SnapshotCacheLookups.WithLabelValues(metrics.CacheResultMiss).Inc()
	rounds, err := s.repo.ListRounds(ctx, id)
	if err != nil {
		return nil, err
	}
	if rounds == nil {
		rounds = []domain.Round{}
	}
	return rounds, nil
}

func (s *service) Dashboard(ctx context.Context, id uuid.UUID) (*Dashboard, error) {
	t, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.views.Build(ctx, t), nil
}

// errNoChange aborts a mutation that would not change state; mutate treats it as success
var errNoChange = errors.New("no change")

// mutate runs fn on a private copy of the tournament under the tournament's
// lock. The copy is persisted and published as the new snapshot only when fn
// succeeds, so a failed operation leaves no trace.
func (s *service) mutate(ctx context.Context, id uuid.UUID, op string, fn func(t *domain.Tournament) ([]event.Event, error)) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return s.fail(op, err)
	}
	working := current.Clone()

	events, err := fn(working)
	if errors.Is(err, errNoChange) {
		return nil
	}
	if err != nil {
		return s.fail(op, err)
	}

	working.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveTournament(ctx, working); err != nil {
		return s.fail(op, fmt.Errorf("failed to save tournament: %w", err))
	}
	s.snapshots.Add(id, working)

	for _, evt := range events {
		s.publish(ctx, evt)
	}
	return nil
}

// snapshot returns a private copy of the latest committed state. A cache hit
// never waits on writers; a miss fills the cache under the tournament lock so a
// reader can never replace a newer committed snapshot with what it loaded.
func (s *service) snapshot(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	if t, ok := s.snapshots.Get(id); ok {
		metrics.SnapshotCacheLookups.WithLabelValues(metrics.CacheResultHit).Inc()
		return t.Clone(), nil
	}

	unlock := s.locks.Lock(id)
	defer unlock()
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// load returns the shared committed state; callers must hold the tournament
// lock and must not mutate the result
func (s *service) load(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	if t, ok := s.snapshots.Get(id); ok {
		metrics.SnapshotCacheLookups.WithLabelValues(metrics.CacheResultHit).Inc()
		return t, nil
	}
	metrics.SnapshotCacheLookups.WithLabelValues(metrics.CacheResultMiss).Inc()

	t, err := s.repo.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	s.snapshots.Add(id, t)
	return t, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

func (s *service) fail(op string, err error) error {
	metrics.OperationErrors.WithLabelValues(op, reason(err)).Inc()
	return err
}

func (s *service) roundPayload(t *domain.Tournament, r *domain.Round) event.RoundPayloadV1 {
	phase := domain.PhaseRunning
	switch {
	case r.Number >= s.engine.Config().LastFinalRound:
		phase = domain.PhaseLastFinal
	case r.Number == s.engine.Config().FinalRound:
		phase = domain.PhaseFinal
	}
	return event.RoundPayloadV1{
		TournamentID:     t.ID,
		TournamentName:   t.Name,
		RoundNumber:      r.Number,
		Phase:            string(phase),
		ChallengeCount:   len(r.Challenges),
		ParticipantCount: len(r.Standings),
	}
}

var reasons = []struct {
	err  error
	name string
}{
	{domain.ErrAlreadyStarted, "already_started"},
	{domain.ErrNotStarted, "not_started"},
	{domain.ErrTournamentFinished, "finished"},
	{domain.ErrTournamentNotFound, "tournament_not_found"},
	{domain.ErrNotEnoughParticipants, "not_enough_participants"},
	{domain.ErrResultMissing, "result_missing"},
	{domain.ErrInvalidWinner, "invalid_winner"},
	{domain.ErrAlreadyPlayed, "already_played"},
	{domain.ErrChallengeNotFound, "challenge_not_found"},
	{domain.ErrInvalidInput, "invalid_input"},
}

func reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return "internal"
}

func findChallenge(t *domain.Tournament, id uuid.UUID) (*domain.Round, *domain.Challenge) {
	for i := len(t.Rounds) - 1; i >= 0; i-- {
		if c := t.Rounds[i].Challenge(id); c != nil {
			return &t.Rounds[i], c
		}
	}
	return nil, nil
}

func cloneChallenge(c *domain.Challenge) domain.Challenge {
	out := *c
	if c.Winner != nil {
		w := *c.Winner
		out.Winner = &w
	}
	if c.PlayedAt != nil {
		at := *c.PlayedAt
		out.PlayedAt = &at
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
