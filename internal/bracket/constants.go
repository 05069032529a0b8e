package bracket

// ============================================================================
// Phase Boundaries
// ============================================================================

// DefaultFinalRound is the round number at which all remaining contenders
// are paired in the final decider.
const DefaultFinalRound = 9

// DefaultLastFinalRound is the round number of the tie-break final, created
// only when the final round leaves more than one leader.
const DefaultLastFinalRound = 10

// DefaultMaxLosses is the number of losses after which a participant is eliminated
const DefaultMaxLosses = 2

// ============================================================================
// View Classes
// ============================================================================

// CSS classes consumed by the dashboard for challenge outcomes
const (
	ClassOK    = "ok"
	ClassWarn  = "warn"
	ClassWrong = "wrong"
)

// challengeIDFormat seeds deterministic challenge ids
const challengeIDFormat = "round-%d-challenge-%d"
