package bracket

import (
	"github.com/osse101/GrandChallenge_Go/internal/domain"
)

// Outcome tags one contestant's result in a challenge for the dashboard.
// A loser in the loss branch is either eliminated or, when they entered the
// round loss-free, survives with their first loss.
type Outcome string

const (
	OutcomePending              Outcome = "pending"
	OutcomeWinBranchWin         Outcome = "win_branch_win"
	OutcomeWinBranchLoss        Outcome = "win_branch_loss"
	OutcomeLossBranchWin        Outcome = "loss_branch_win"
	OutcomeLossBranchSurvived   Outcome = "loss_branch_survived"
	OutcomeLossBranchEliminated Outcome = "loss_branch_eliminated"
)

// Class maps the outcome to the dashboard styling class
func (o Outcome) Class() string {
	switch o {
	case OutcomeWinBranchWin, OutcomeLossBranchWin:
		return ClassOK
	case OutcomeWinBranchLoss, OutcomeLossBranchSurvived:
		return ClassWarn
	case OutcomeLossBranchEliminated:
		return ClassWrong
	default:
		return ""
	}
}

// ChallengeOutcome holds the outcome for both sides of a challenge
type ChallengeOutcome struct {
	From Outcome `json:"from"`
	To   Outcome `json:"to"`
}

// Classify derives the outcome of both contestants from the branch, the
// winner and the loss count the loser carried into the round.
func (e *Engine) Classify(c *domain.Challenge, loserEntryLosses int) ChallengeOutcome {
	if c.Winner == nil {
		return ChallengeOutcome{From: OutcomePending, To: OutcomePending}
	}

	win, lose := OutcomeWinBranchWin, OutcomeWinBranchLoss
	if c.Branch == domain.BranchLoss {
		win, lose = OutcomeLossBranchWin, OutcomeLossBranchSurvived
	}
	if e.Eliminated(loserEntryLosses + 1) {
		lose = OutcomeLossBranchEliminated
	}

	if *c.Winner == c.UserFrom {
		return ChallengeOutcome{From: win, To: lose}
	}
	return ChallengeOutcome{From: lose, To: win}
}

// Outcomes classifies every challenge of a round
func (e *Engine) Outcomes(round *domain.Round) map[string]ChallengeOutcome {
	outcomes := make(map[string]ChallengeOutcome, len(round.Challenges))
	for i := range round.Challenges {
		c := &round.Challenges[i]
		outcomes[c.ID.String()] = e.Classify(c, round.EntryLosses(c.Loser()))
	}
	return outcomes
}
