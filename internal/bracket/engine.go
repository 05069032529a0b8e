package bracket

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
)

// Config holds the phase boundaries and elimination policy of the bracket
type Config struct {
	FinalRound     int
	LastFinalRound int
	MaxLosses      int
}

// DefaultConfig returns the GrandChallenge defaults: final at round 9,
// tie-break final at round 10, elimination after two losses.
func DefaultConfig() Config {
	return Config{
		FinalRound:     DefaultFinalRound,
		LastFinalRound: DefaultLastFinalRound,
		MaxLosses:      DefaultMaxLosses,
	}
}

// Validate checks that the phase boundaries are consistent
func (c Config) Validate() error {
	if c.FinalRound < 1 {
		return fmt.Errorf("%w: final round must be at least 1, got %d", domain.ErrInvalidInput, c.FinalRound)
	}
	if c.LastFinalRound != c.FinalRound+1 {
		return fmt.Errorf("%w: last final round must directly follow the final round (%d), got %d", domain.ErrInvalidInput, c.FinalRound, c.LastFinalRound)
	}
	if c.MaxLosses < 1 {
		return fmt.Errorf("%w: max losses must be at least 1, got %d", domain.ErrInvalidInput, c.MaxLosses)
	}
	return nil
}

// Engine pairs participants for the next round and decides when the bracket is over.
// Every method is a pure function of its arguments.
type Engine struct {
	cfg Config
}

// NewEngine creates a new Engine
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Phase derives the tournament phase from its state
func (e *Engine) Phase(t *domain.Tournament) domain.Phase {
	current := t.CurrentRound()
	switch {
	case t.Finished:
		return domain.PhaseFinished
	case current == nil:
		return domain.PhaseNotStarted
	case current.Number >= e.cfg.LastFinalRound:
		return domain.PhaseLastFinal
	case current.Number == e.cfg.FinalRound:
		return domain.PhaseFinal
	default:
		return domain.PhaseRunning
	}
}

// Eliminated reports whether a loss count knocks a participant out
func (e *Engine) Eliminated(losses int) bool {
	return losses >= e.cfg.MaxLosses
}

// Contenders returns the participants of a round that are still in the
// tournament, in seed order, with their current loss counts.
func (e *Engine) Contenders(round *domain.Round, losses map[string]int) []domain.Standing {
	contenders := make([]domain.Standing, 0, len(round.Standings))
	for _, s := range round.Standings {
		l := losses[s.ParticipantID]
		if e.Eliminated(l) {
			continue
		}
		contenders = append(contenders, domain.Standing{ParticipantID: s.ParticipantID, Losses: l})
	}
	return contenders
}

// NextRound builds the round following a completed one. Challenge ids are
// derived from the tournament id, round number and position, so the same
// inputs always produce the same round.
func (e *Engine) NextRound(tournamentID uuid.UUID, completed *domain.Round, losses map[string]int) domain.Round {
	number := completed.Number + 1
	contenders := e.Contenders(completed, losses)

	var pairs [][2]domain.Standing
	switch {
	case number >= e.cfg.LastFinalRound:
		contenders = leaders(contenders)
		pairs = pairSequential(contenders)
	case number == e.cfg.FinalRound:
		pairs = pairSequential(contenders)
	default:
		pairs = pairByBranch(contenders)
	}

	round := domain.Round{
		Number:     number,
		Standings:  contenders,
		Challenges: make([]domain.Challenge, 0, len(pairs)),
	}
	for i, p := range pairs {
		round.Challenges = append(round.Challenges, domain.Challenge{
			ID:          challengeID(tournamentID, number, i),
			RoundNumber: number,
			Position:    i,
			Branch:      branchFor(p[0], p[1]),
			UserFrom:    p[0].ParticipantID,
			UserTo:      p[1].ParticipantID,
			Status:      domain.ChallengeStatusScheduled,
		})
	}
	return round
}

// Evaluate decides whether the tournament is over after the given round was
// closed, and if so who the champion is.
func (e *Engine) Evaluate(closed *domain.Round, losses map[string]int) (bool, *string) {
	contenders := e.Contenders(closed, losses)
	if len(contenders) == 0 {
		return true, nil
	}
	if len(contenders) == 1 {
		return true, &contenders[0].ParticipantID
	}

	top := leaders(contenders)
	switch {
	case closed.Number >= e.cfg.LastFinalRound:
		// still tied after the tie-break: seed order decides
		return true, &top[0].ParticipantID
	case closed.Number == e.cfg.FinalRound && len(top) == 1:
		return true, &top[0].ParticipantID
	}
	return false, nil
}

// pairByBranch pairs loss-free contenders against each other and contenders
// with losses against each other. When both groups have an odd member left
// over, the two leftovers meet in the loss branch; a single leftover gets a bye.
func pairByBranch(contenders []domain.Standing) [][2]domain.Standing {
	var winGroup, lossGroup []domain.Standing
	for _, c := range contenders {
		if c.Losses == 0 {
			winGroup = append(winGroup, c)
		} else {
			lossGroup = append(lossGroup, c)
		}
	}

	pairs := pairSequential(winGroup)
	pairs = append(pairs, pairSequential(lossGroup)...)
	if len(winGroup)%2 == 1 && len(lossGroup)%2 == 1 {
		pairs = append(pairs, [2]domain.Standing{winGroup[len(winGroup)-1], lossGroup[len(lossGroup)-1]})
	}
	return pairs
}

// pairSequential pairs neighbours in order; an odd last member is left out
func pairSequential(contenders []domain.Standing) [][2]domain.Standing {
	pairs := make([][2]domain.Standing, 0, len(contenders)/2)
	for i := 0; i+1 < len(contenders); i += 2 {
		pairs = append(pairs, [2]domain.Standing{contenders[i], contenders[i+1]})
	}
	return pairs
}

// leaders returns the contenders sharing the lowest loss count, in seed order
func leaders(contenders []domain.Standing) []domain.Standing {
	if len(contenders) == 0 {
		return nil
	}
	best := contenders[0].Losses
	for _, c := range contenders[1:] {
		if c.Losses < best {
			best = c.Losses
		}
	}
	var top []domain.Standing
	for _, c := range contenders {
		if c.Losses == best {
			top = append(top, c)
		}
	}
	return top
}

func branchFor(a, b domain.Standing) domain.Branch {
	if a.Losses == 0 && b.Losses == 0 {
		return domain.BranchWin
	}
	return domain.BranchLoss
}

func challengeID(tournamentID uuid.UUID, round, position int) uuid.UUID {
	return uuid.NewSHA1(tournamentID, []byte(fmt.Sprintf(challengeIDFormat, round, position)))
}
