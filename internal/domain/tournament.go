package domain

import (
	"time"

	"github.com/google/uuid"
)

// Branch identifies which half of the bracket a challenge belongs to
type Branch string

const (
	// BranchWin holds challenges between loss-free contestants
	BranchWin Branch = "win"
	// BranchLoss holds challenges where at least one contestant has a prior loss
	BranchLoss Branch = "loss"
)

// ChallengeStatus represents the state of a challenge
type ChallengeStatus string

const (
	ChallengeStatusScheduled ChallengeStatus = "scheduled"
	ChallengeStatusPlayed    ChallengeStatus = "played"
)

// Phase is the lifecycle phase of a tournament, derived from its rounds
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseFinal      Phase = "final"
	PhaseLastFinal  Phase = "last_final"
	PhaseFinished   Phase = "finished"
)

// Participant is a player entered in a tournament
type Participant struct {
	ID     string `json:"id"`
	Seed   int    `json:"seed"`
	Losses int    `json:"losses"`
}

// Challenge is a head-to-head contest inside a round
type Challenge struct {
	ID          uuid.UUID       `json:"id"`
	RoundNumber int             `json:"round_number"`
	Position    int             `json:"position"`
	Branch      Branch          `json:"branch"`
	UserFrom    string          `json:"user_from"`
	UserTo      string          `json:"user_to"`
	Winner      *string         `json:"winner,omitempty"`
	Status      ChallengeStatus `json:"status"`
	PlayedAt    *time.Time      `json:"played_at,omitempty"`
}

// Involves reports whether the participant is one of the two contestants
func (c *Challenge) Involves(participantID string) bool {
	return c.UserFrom == participantID || c.UserTo == participantID
}

// Loser returns the contestant that did not win, or "" while unplayed
func (c *Challenge) Loser() string {
	if c.Winner == nil {
		return ""
	}
	if *c.Winner == c.UserFrom {
		return c.UserTo
	}
	return c.UserFrom
}

// Standing is a participant's loss count on entering a round
type Standing struct {
	ParticipantID string `json:"participant_id"`
	Losses        int    `json:"losses"`
}

// Round is one stage of a tournament. Round 0 is the seed list and never has challenges.
type Round struct {
	Number     int         `json:"round_number"`
	Standings  []Standing  `json:"standings"`
	Challenges []Challenge `json:"challenges"`
	Closed     bool        `json:"closed"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ParticipantIDs returns the round's participants in seed order
func (r *Round) ParticipantIDs() []string {
	ids := make([]string, len(r.Standings))
	for i, s := range r.Standings {
		ids[i] = s.ParticipantID
	}
	return ids
}

// EntryLosses returns the loss count a participant had on entering the round
func (r *Round) EntryLosses(participantID string) int {
	for _, s := range r.Standings {
		if s.ParticipantID == participantID {
			return s.Losses
		}
	}
	return 0
}

// Challenge returns the challenge with the given id, or nil
func (r *Round) Challenge(id uuid.UUID) *Challenge {
	for i := range r.Challenges {
		if r.Challenges[i].ID == id {
			return &r.Challenges[i]
		}
	}
	return nil
}

// Tournament is the aggregate root of the bracket
type Tournament struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Participants []Participant `json:"participants"`
	Rounds       []Round       `json:"rounds"`
	Finished     bool          `json:"finished"`
	Champion     *string       `json:"champion,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CurrentRound returns the last round, or nil before the tournament starts
func (t *Tournament) CurrentRound() *Round {
	if len(t.Rounds) == 0 {
		return nil
	}
	return &t.Rounds[len(t.Rounds)-1]
}

// Participant returns the participant with the given id, or nil
func (t *Tournament) Participant(id string) *Participant {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i]
		}
	}
	return nil
}

// Losses returns the loss count per participant id
func (t *Tournament) Losses() map[string]int {
	losses := make(map[string]int, len(t.Participants))
	for _, p := range t.Participants {
		losses[p.ID] = p.Losses
	}
	return losses
}

// Clone returns a deep copy so callers can mutate it without touching shared snapshots
func (t *Tournament) Clone() *Tournament {
	if t == nil {
		return nil
	}
	c := *t
	c.Participants = append([]Participant(nil), t.Participants...)
	if t.Champion != nil {
		champion := *t.Champion
		c.Champion = &champion
	}
	c.Rounds = make([]Round, len(t.Rounds))
	for i := range t.Rounds {
		c.Rounds[i] = t.Rounds[i].Clone()
	}
	return &c
}

// Clone returns a deep copy of the round
func (r *Round) Clone() Round {
	c := *r
	c.Standings = append([]Standing(nil), r.Standings...)
	c.Challenges = make([]Challenge, len(r.Challenges))
	for i, ch := range r.Challenges {
		if ch.Winner != nil {
			w := *ch.Winner
			ch.Winner = &w
		}
		if ch.PlayedAt != nil {
			at := *ch.PlayedAt
			ch.PlayedAt = &at
		}
		c.Challenges[i] = ch
	}
	return c
}

// Player is a participant's profile as known by the user directory
type Player struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Points      float64 `json:"points"`
	Level       int     `json:"level"`
}

// Name returns the best label for display
func (p *Player) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}
